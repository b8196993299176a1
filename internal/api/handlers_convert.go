package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/factbook/internal/book"
	"github.com/dgallion1/factbook/internal/convert"
	"github.com/dgallion1/factbook/internal/parser"
	"github.com/dgallion1/factbook/internal/render"
)

type convertRequest struct {
	Documents []string `json:"documents"`
}

type convertResponse struct {
	RunID  string         `json:"run_id"`
	Files  []string       `json:"files,omitempty"`
	Result convert.Result `json:"result"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var (
		docs  [][]byte
		names []string
		err   error
	)
	if mediaType == "multipart/form-data" {
		docs, names, err = s.readUploads(r)
	} else {
		docs, err = readDocuments(r.Body)
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("request exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(docs) == 0 {
		jsonError(w, "at least one document is required", http.StatusBadRequest)
		return
	}

	runID := runIDFrom(r.Context())
	log := s.log.With("run_id", runID)
	conv := convert.New(
		convert.WithLimits(s.cfg.Limits),
		convert.WithLogger(log),
	)

	start := time.Now()
	result := conv.Convert(docs...)
	s.stats.Record(time.Since(start), len(docs), result.Success)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(convertResponse{
		RunID:  runID,
		Files:  names,
		Result: result,
	})
}

func readDocuments(body io.Reader) ([][]byte, error) {
	var req convertRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("invalid json body: %w", err)
	}
	docs := make([][]byte, 0, len(req.Documents))
	for _, d := range req.Documents {
		docs = append(docs, []byte(d))
	}
	return docs, nil
}

// readUploads returns the "files" parts in form order.
func (s *Server) readUploads(r *http.Request) ([][]byte, []string, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("invalid multipart form: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	docs := make([][]byte, 0, len(files))
	names := make([]string, 0, len(files))
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !parser.IsSupportedExtension(filename) {
			return nil, nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
		}

		f, err := fh.Open()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open %s", filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s", filename)
		}
		docs = append(docs, data)
		names = append(names, filename)
	}
	return docs, names, nil
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var b book.Book
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"files": render.Files(&b),
	})
}

func (s *Server) handleConvertStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"window": s.cfg.StatsWindow.String(),
		"stats":  s.stats.Snapshot(),
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
