package contracts

import (
	"context"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Handler registers its routes on a router.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// Pinger reports whether a backing store answers. *mongo.Client satisfies it.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}
