package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/JonMunkholm/parseos/internal/core"
	"github.com/JonMunkholm/parseos/internal/sheet"
	"github.com/go-chi/chi/v5"
)

// maxMemory is the part of a multipart form kept in memory; the rest spills
// to temporary files.
const maxMemory = 32 << 20

// tablePayload is one {headers, rows} object. Pointers tell a missing
// member apart from an empty one.
type tablePayload struct {
	Headers *[]any   `json:"headers"`
	Rows    *[][]any `json:"rows"`
}

// convertRequest accepts both body shapes: a bare table for single-source
// formats, or named tables for the dual-source format.
type convertRequest struct {
	tablePayload
	Retenciones  *tablePayload `json:"retenciones"`
	Percepciones *tablePayload `json:"percepciones"`
}

// sources converts the request into engine tables. Members that are absent
// or malformed are left out; the service reports them.
func (req convertRequest) sources() core.Sources {
	out := make(core.Sources)
	for name, p := range map[string]*tablePayload{
		core.SourceMain:         &req.tablePayload,
		core.SourceRetenciones:  req.Retenciones,
		core.SourcePercepciones: req.Percepciones,
	} {
		if t, ok := p.table(); ok {
			out[name] = t
		}
	}
	return out
}

func (p *tablePayload) table() (core.Table, bool) {
	if p == nil || p.Headers == nil || p.Rows == nil {
		return core.Table{}, false
	}

	headers := make([]string, len(*p.Headers))
	for i, h := range *p.Headers {
		headers[i] = core.Stringify(h)
	}
	return core.Table{Headers: headers, Rows: *p.Rows}, true
}

// handleConvert converts a JSON body.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "format")
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Convert.MaxBodySize)

	var req convertRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, r, err, http.StatusRequestEntityTooLarge)
			return
		}
		s.respondError(w, r, fmt.Errorf("%w: %v", core.ErrInvalidShape, err), http.StatusBadRequest)
		return
	}

	res, err := s.service.Transform(withRequestMetadata(r, originJSON), key, req.sources())
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("X-Conversion-ID", res.ConversionID)
	writeJSON(w, res)
}

// handleUpload converts uploaded spreadsheet files. Single-source formats
// read the "file" field; the dual-source format reads one field per source.
// With ?download=1 the output is sent as a text attachment.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "format")
	info, ok := s.service.Format(key)
	if !ok {
		err := fmt.Errorf("%w: %q", core.ErrUnknownFormat, key)
		s.respondError(w, r, err, statusFor(err))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Convert.MaxBodySize)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, r, err, http.StatusRequestEntityTooLarge)
			return
		}
		s.respondError(w, r, fmt.Errorf("%w: %v", errNoFile, err), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	opts, err := readOptions(r, info)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	sources := make(core.Sources, len(info.Sources))
	for _, name := range info.Sources {
		t, err := s.readUpload(r, uploadField(name), opts)
		if err != nil {
			s.respondError(w, r, err, statusFor(err))
			return
		}
		sources[name] = t
	}

	res, err := s.service.Transform(withRequestMetadata(r, originUpload), key, sources)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("X-Conversion-ID", res.ConversionID)
	if wantsDownload(r) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s-%s.txt"`, key, res.ConversionID))
		w.Write([]byte(res.Text))
		return
	}
	writeJSON(w, res)
}

// readUpload parses one multipart file field into a table.
func (s *Server) readUpload(r *http.Request, field string, opts sheet.Options) (core.Table, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return core.Table{}, fmt.Errorf("%w: field %q", errNoFile, field)
	}
	defer file.Close()

	if header.Size > s.cfg.Convert.MaxFileSize {
		return core.Table{}, fmt.Errorf("%w: %s is %d bytes, limit %d",
			errFileTooLarge, header.Filename, header.Size, s.cfg.Convert.MaxFileSize)
	}

	t, err := sheet.Read(header.Filename, file, opts)
	if err != nil {
		return core.Table{}, fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}

// uploadField names the multipart field that carries a source.
func uploadField(source string) string {
	if source == core.SourceMain {
		return "file"
	}
	return source
}

// readOptions reads the optional sheet, header_row and delimiter form values.
// The header row defaults to the one the format declares.
func readOptions(r *http.Request, info core.FormatInfo) (sheet.Options, error) {
	opts := sheet.Options{
		Sheet:     r.FormValue("sheet"),
		HeaderRow: info.HeaderRow,
	}

	if v := r.FormValue("header_row"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return opts, fmt.Errorf("%w: header_row must be a positive integer", core.ErrInvalidShape)
		}
		opts.HeaderRow = n
	}

	if v := r.FormValue("delimiter"); v != "" {
		d, err := sheet.ParseDelimiter(v)
		if err != nil {
			return opts, fmt.Errorf("%w: %v", core.ErrInvalidShape, err)
		}
		opts.Delimiter = d
	}
	return opts, nil
}

func wantsDownload(r *http.Request) bool {
	v := r.URL.Query().Get("download")
	return v == "1" || v == "true"
}

// formatsResponse is the format catalog.
type formatsResponse struct {
	Formats []core.FormatInfo `json:"formats"`
	Groups  []string          `json:"groups"`
}

// handleListFormats lists every registered format.
func (s *Server) handleListFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, formatsResponse{
		Formats: s.service.Formats(),
		Groups:  core.Groups(),
	})
}

// handleGetFormat describes a single format.
func (s *Server) handleGetFormat(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "format")
	info, ok := s.service.Format(key)
	if !ok {
		err := fmt.Errorf("%w: %q", core.ErrUnknownFormat, key)
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, info)
}

// healthResponse reports liveness and conversion slot usage.
type healthResponse struct {
	Status      string             `json:"status"`
	Formats     int                `json:"formats"`
	Conversions core.LimiterStatus `json:"conversions"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, healthResponse{
		Status:      "ok",
		Formats:     core.FormatCount(),
		Conversions: s.service.LimiterStatus(),
	})
}
