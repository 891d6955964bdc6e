package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"financeiro/internal/core"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// badQueryError marks malformed query parameters or request bodies.
type badQueryError struct {
	msg string
}

func (e badQueryError) Error() string { return e.msg }

func badQuery(format string, args ...any) error {
	return badQueryError{msg: fmt.Sprintf(format, args...)}
}

// sanitizeInput removes control characters except tab, newline and carriage
// return, and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// decodeJSON reads one JSON object from the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		switch {
		case errors.Is(err, io.EOF):
			return badQuery("empty request body")
		case errors.Is(err, core.ErrInvalidDate), errors.Is(err, core.ErrInvalidAmount):
			// field decoders report domain errors, which are validation failures
			return err
		default:
			return badQuery("invalid JSON body: %v", err)
		}
	}
	return nil
}

// parseExpanded reads the comma separated expanded ids.
func parseExpanded(query url.Values) core.ExpansionSet {
	var ids []string
	for _, v := range query["expanded"] {
		for _, id := range strings.Split(v, ",") {
			if id = sanitizeInput(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return core.NewExpansionSet(ids...)
}

// parseBalanceMode reads the mode parameter. Empty selects the default.
func parseBalanceMode(query url.Values) (core.BalanceMode, error) {
	v := strings.TrimSpace(query.Get("mode"))
	if v == "" {
		return "", nil
	}
	mode, err := core.ParseBalanceMode(v)
	if err != nil {
		return "", badQuery("mode must be chained or external")
	}
	return mode, nil
}

// parseDateRange reads the optional from and to dates (YYYY-MM-DD).
func parseDateRange(query url.Values) (from, to core.Date, err error) {
	if from, err = parseOptionalDate(query, "from"); err != nil {
		return core.Date{}, core.Date{}, err
	}
	if to, err = parseOptionalDate(query, "to"); err != nil {
		return core.Date{}, core.Date{}, err
	}
	return from, to, nil
}

func parseOptionalDate(query url.Values, key string) (core.Date, error) {
	v := strings.TrimSpace(query.Get(key))
	if v == "" {
		return core.Date{}, nil
	}
	d, err := core.ParseDate(v)
	if err != nil {
		return core.Date{}, badQuery("%s must be a date (YYYY-MM-DD)", key)
	}
	return d, nil
}

// parsePeriodRange reads period, or from and to (YYYY-MM). Missing bounds
// default to the month of now.
func parsePeriodRange(query url.Values, now time.Time) (from, to core.Period, err error) {
	current := core.NewPeriod(now.Year(), int(now.Month()))
	if v := strings.TrimSpace(query.Get("period")); v != "" {
		p, err := core.ParsePeriod(v)
		if err != nil {
			return "", "", badQuery("period must be YYYY-MM")
		}
		return p, p, nil
	}

	from, to = current, current
	if v := strings.TrimSpace(query.Get("from")); v != "" {
		if from, err = core.ParsePeriod(v); err != nil {
			return "", "", badQuery("from must be YYYY-MM")
		}
		to = from
	}
	if v := strings.TrimSpace(query.Get("to")); v != "" {
		if to, err = core.ParsePeriod(v); err != nil {
			return "", "", badQuery("to must be YYYY-MM")
		}
	}
	return from, to, nil
}

// parseFlow reads a required income or expense flow.
func parseFlow(query url.Values) (core.Flow, error) {
	f := core.Flow(strings.TrimSpace(query.Get("flow")))
	if !f.IsValid() {
		return "", badQuery("flow must be income or expense")
	}
	return f, nil
}

// parseOptionalFlow accepts an empty flow, meaning both.
func parseOptionalFlow(query url.Values) (core.Flow, error) {
	if strings.TrimSpace(query.Get("flow")) == "" {
		return "", nil
	}
	return parseFlow(query)
}

// parseOpenPeriodRange reads period, or from and to (YYYY-MM). Missing
// bounds stay open.
func parseOpenPeriodRange(query url.Values) (from, to core.Period, err error) {
	if strings.TrimSpace(query.Get("period")) != "" {
		return parsePeriodRange(query, time.Time{})
	}
	if v := strings.TrimSpace(query.Get("from")); v != "" {
		if from, err = core.ParsePeriod(v); err != nil {
			return "", "", badQuery("from must be YYYY-MM")
		}
	}
	if v := strings.TrimSpace(query.Get("to")); v != "" {
		if to, err = core.ParsePeriod(v); err != nil {
			return "", "", badQuery("to must be YYYY-MM")
		}
	}
	return from, to, nil
}
