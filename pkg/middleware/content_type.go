package middleware

import (
	"net/http"
	"slices"

	apperrors "datacleaner/pkg/errors"
	httputil "datacleaner/pkg/http"
	"datacleaner/pkg/logger"
)

// ContentTypeValidation rejects request bodies whose media type is not in
// allowed. Only methods that carry a body are checked.
func ContentTypeValidation(log *logger.Logger, allowed ...string) func(http.Handler) http.Handler {
	if len(allowed) == 0 {
		allowed = []string{httputil.ContentTypeJSON}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requiresContentType(r.Method) {
				contentType := httputil.MediaType(r)

				if !slices.Contains(allowed, contentType) {
					log.Warn("Invalid Content-Type header",
						"request_id", RequestID(r.Context()),
						"content_type", contentType,
						"path", r.URL.Path,
						"method", r.Method,
					)
					_ = httputil.WriteError(w, apperrors.UnsupportedMedia(contentType, allowed...))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requiresContentType(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}
