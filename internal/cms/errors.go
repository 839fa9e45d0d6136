// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cms

import (
	"errors"
	"fmt"
	"strings"

	graphql "github.com/hasura/go-graphql-client"
)

// ErrNotConfigured is returned by every fetch when the CMS URL or token is
// missing.
var ErrNotConfigured = errors.New("cms: endpoint or token not configured")

// NotConfiguredMessage is shown to visitors in place of a feed when the CMS
// is not configured.
const NotConfiguredMessage = "CMS URL or token is not configured."

// QueryError is a failed GraphQL operation. Messages holds the structured
// error messages from the response payload, when the CMS sent any.
type QueryError struct {
	Op       string
	Messages []string
	Err      error
}

func (e *QueryError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("cms %s: %s", e.Op, strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("cms %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

func newQueryError(op string, err error) error {
	return &QueryError{Op: op, Messages: graphQLMessages(err), Err: err}
}

// Codes the transport library uses for its own failures. Those errors are
// not messages from the CMS.
var transportCodes = map[string]bool{
	"request_error":        true,
	"json_encode_error":    true,
	"json_decode_error":    true,
	"graphql_encode_error": true,
	"graphql_decode_error": true,
}

func graphQLMessages(err error) []string {
	var gqlErrs graphql.Errors
	if !errors.As(err, &gqlErrs) {
		return nil
	}
	var out []string
	for _, e := range gqlErrs {
		if code, _ := e.Extensions["code"].(string); transportCodes[code] {
			continue
		}
		if msg := strings.TrimSpace(e.Message); msg != "" {
			out = append(out, msg)
		}
	}
	return out
}

// UserMessage picks the text shown to a visitor for err: the first CMS
// error message when there is one, otherwise fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNotConfigured) {
		return NotConfiguredMessage
	}
	var qerr *QueryError
	if errors.As(err, &qerr) && len(qerr.Messages) > 0 {
		return qerr.Messages[0]
	}
	return fallback
}
