package table

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ProfileColumns is the column list of the sales export the cleaner was
// built for.
var ProfileColumns = []string{
	"Transaction_ID", "Cust Name", "Email Address", "Phone#", "Gender", "Age", "DOB", "Region",
	"Order Date", "Delivery Date", "Product Category", "Product_ID", "Quantity Ordered",
	"Unit Price", "Total Amount", "Promo Code", "Channel", "Referral Source", "Signup Date",
	"Subscribed To Newsletter", "Feedback", "Satisfaction Score",
}

const DefaultProfileLimit = 10

// ColumnProfile holds the first distinct values of one column in order of
// appearance.
type ColumnProfile struct {
	Column    string
	Found     bool
	Values    []string
	Unique    int
	Truncated bool
}

// Profile reports the distinct values of each requested column, keeping at
// most limit of them. A non-positive limit keeps them all.
func Profile(t *Table, columns []string, limit int) []ColumnProfile {
	profiles := make([]ColumnProfile, 0, len(columns))
	for _, col := range columns {
		p := ColumnProfile{Column: col}
		if !t.HasColumn(col) {
			profiles = append(profiles, p)
			continue
		}

		p.Found = true
		seen := make(map[string]bool)
		for _, rec := range t.Rows {
			v := FormatCell(rec[col])
			if seen[v] {
				continue
			}
			seen[v] = true
			if limit <= 0 || len(p.Values) < limit {
				p.Values = append(p.Values, v)
			}
		}
		p.Unique = len(seen)
		p.Truncated = len(p.Values) < p.Unique
		profiles = append(profiles, p)
	}
	return profiles
}

// WriteProfile prints one line per column, values quoted.
func WriteProfile(w io.Writer, profiles []ColumnProfile) error {
	if _, err := fmt.Fprintln(w, "Unique values per column:"); err != nil {
		return err
	}

	for _, p := range profiles {
		var line string
		if !p.Found {
			line = p.Column + ": Column not found"
		} else {
			quoted := make([]string, len(p.Values))
			for i, v := range p.Values {
				quoted[i] = strconv.Quote(v)
			}
			line = p.Column + ": [" + strings.Join(quoted, " ") + "]"
			if p.Truncated {
				line += " ..."
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
