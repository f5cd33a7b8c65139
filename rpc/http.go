package rpc

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hashgraph/hedera-services-sub009/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSONResponse(w http.ResponseWriter, response any, statusCode int, log *slog.Logger) {
	w.Header().Set(headerContentType, applicationJson)
	w.WriteHeader(statusCode)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		log.Warn("failed to write JSON response", logger.Error(err))
	}
}

// writeJSONError replies to the request with the error message and HTTP code.
// The caller should ensure no further writes are done to w.
func writeJSONError(w http.ResponseWriter, e error, code int, log *slog.Logger) {
	writeJSONResponse(w, errorResponse{Error: e.Error()}, code, log)
}
