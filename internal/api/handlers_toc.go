package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dgallion1/doctoc/internal/document"
	"github.com/dgallion1/doctoc/internal/toc"
)

type tocRequest struct {
	Path     string            `json:"path"`
	Body     string            `json:"body"`
	Metadata map[string]string `json:"metadata"`
	Static   bool              `json:"static"`
}

type tocResponse struct {
	Path       string `json:"path,omitempty"`
	Body       string `json:"body"`
	Outline    string `json:"outline"`
	HasOutline bool   `json:"has_outline"`
	Headings   int    `json:"headings"`
	Outcome    string `json:"outcome"`
}

type batchRequest struct {
	Documents []tocRequest `json:"documents"`
}

func (req tocRequest) document() *document.Document {
	return &document.Document{
		Path:     req.Path,
		Body:     req.Body,
		Metadata: req.Metadata,
		Static:   req.Static,
	}
}

func newTOCResponse(doc *document.Document, res toc.Result) tocResponse {
	return tocResponse{
		Path:       doc.Path,
		Body:       doc.Body,
		Outline:    doc.Outline,
		HasOutline: doc.HasOutline(),
		Headings:   res.Headings,
		Outcome:    res.Outcome,
	}
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req tocRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	doc := req.document()
	res, err := s.transformer.Transform(doc)
	if err != nil {
		s.transformError(w, err, -1)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newTOCResponse(doc, res))
}

// handleBatchTransform runs the transform over every document in order. The
// first invalid heading pattern aborts the batch; nothing is returned for the
// documents already processed.
func (s *Server) handleBatchTransform(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10)

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Documents) == 0 {
		jsonError(w, "at least one document is required", http.StatusBadRequest)
		return
	}
	if len(req.Documents) > s.cfg.MaxBatchDocs {
		jsonError(w, fmt.Sprintf("batch exceeds max size (%d documents)", s.cfg.MaxBatchDocs), http.StatusBadRequest)
		return
	}

	results := make([]tocResponse, 0, len(req.Documents))
	for i, d := range req.Documents {
		doc := d.document()
		res, err := s.transformer.Transform(doc)
		if err != nil {
			s.log.Warn("batch aborted", "index", i, "path", doc.Path, "error", err)
			s.transformError(w, err, i)
			return
		}
		results = append(results, newTOCResponse(doc, res))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": results})
}

// transformError maps a Transform failure to a response. index is the batch
// position, or -1 for single requests.
func (s *Server) transformError(w http.ResponseWriter, err error, index int) {
	var perr *toc.PatternError
	if !errors.As(err, &perr) {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	body := map[string]any{
		"error":   perr.Error(),
		"pattern": perr.Pattern,
	}
	if perr.Path != "" {
		body["path"] = perr.Path
	}
	if index >= 0 {
		body["index"] = index
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(body)
}
