// Package http provides http transport for reconcile
package http

import (
	"bytes"
	"errors"
	"io"
	stdhttp "net/http"
	"strconv"
	"strings"

	"namematch/internal/adapters/csvio"
	"namematch/internal/core/pipeline"
	"namematch/internal/modkit/httpkit"
	perr "namematch/internal/platform/errors"
	pnet "namematch/internal/platform/net"
	"namematch/internal/services/api/reconcile/domain"
	svc "namematch/internal/services/api/reconcile/service"

	"github.com/google/uuid"
)

// Multipart field names
const (
	FieldDocument  = "document"
	FieldNames     = "names"
	FieldDetails   = "details"
	FieldThreshold = "threshold"
	FieldSorted    = "sorted"
	FieldShowFiles = "show_files"
)

// memory kept in RAM by ParseMultipartForm before spilling to temp files
const maxFormMemory = 16 << 20

// Register mounts reconcile endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	r.Use(stampRun)
	httpkit.PostForm(r, "/", h.reconcile)
	httpkit.PostJSON(r, "/text", h.text)
	httpkit.PostForm(r, "/matches.csv", h.matchesCSV)
	httpkit.PostForm(r, "/merged.csv", h.mergedCSV)
	httpkit.GetJSON(r, "/sample", h.sample)
}

type handlers struct{ svc svc.Service }

// stampRun gives every request a run id shared by the pipeline logs and the envelope
func stampRun(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		id := uuid.NewString()
		ctx := pnet.WithRequest(r.Context(), "", id)
		w.Header().Set(pnet.HeaderRunID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// @Summary Reconcile a statement against customer files
// @Tags Reconcile
// @Accept multipart/form-data
// @Produce json
// @Param document formData file true "statement (PDF or text)"
// @Param names formData file true "customer names CSV"
// @Param details formData file false "customer details CSV"
// @Param threshold formData int false "0-100, inclusive"
// @Param show_files formData bool false "include a preview of the customer files"
// @Success 200 {object} domain.Report
// @Router /reconcile [post]
func (h *handlers) reconcile(r *stdhttp.Request) httpkit.Response {
	res, err := h.run(r)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.OK(domain.NewReport(res, sortedParam(r)))
}

// @Summary Reconcile page text against a name list
// @Tags Reconcile
// @Accept json
// @Produce json
// @Param payload body domain.TextInput true "pages, names, optional details"
// @Success 200 {object} domain.Report
// @Router /reconcile/text [post]
func (h *handlers) text(r *stdhttp.Request, in domain.TextInput) (any, error) {
	res, err := h.svc.ReconcileText(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return domain.NewReport(res, sortedParam(r)), nil
}

// @Summary Every candidate with its best customer as CSV
// @Tags Reconcile
// @Accept multipart/form-data
// @Produce text/csv
// @Router /reconcile/matches.csv [post]
func (h *handlers) matchesCSV(r *stdhttp.Request) httpkit.Response {
	res, err := h.run(r)
	if err != nil {
		return httpkit.Error(err)
	}
	matches := res.Matches
	if sortedParam(r) {
		matches = domain.SortedMatches(res)
	}
	var b bytes.Buffer
	if err := csvio.WriteMatches(&b, matches); err != nil {
		return httpkit.Error(err)
	}
	return httpkit.Attachment(domain.MatchesFilename, domain.CSVContentType, b.Bytes())
}

// @Summary Accepted matches joined with customer details as CSV
// @Tags Reconcile
// @Accept multipart/form-data
// @Produce text/csv
// @Router /reconcile/merged.csv [post]
func (h *handlers) mergedCSV(r *stdhttp.Request) httpkit.Response {
	res, err := h.run(r)
	if err != nil {
		return httpkit.Error(err)
	}
	var b bytes.Buffer
	if err := csvio.WriteMerged(&b, res.Merged, res.DetailColumns); err != nil {
		return httpkit.Error(err)
	}
	return httpkit.Attachment(domain.MergedFilename, domain.CSVContentType, b.Bytes())
}

// @Summary Reconcile the bundled demo files
// @Tags Reconcile
// @Produce json
// @Param threshold query int false "0-100, inclusive"
// @Param show_files query bool false "include a preview of the customer files"
// @Success 200 {object} domain.Report
// @Router /reconcile/sample [get]
func (h *handlers) sample(r *stdhttp.Request) (any, error) {
	t, err := thresholdParam(r.URL.Query().Get(FieldThreshold))
	if err != nil {
		return nil, err
	}
	res, err := h.svc.Sample(r.Context(), t, boolParam(r, FieldShowFiles))
	if err != nil {
		return nil, err
	}
	return domain.NewReport(res, sortedParam(r)), nil
}

func (h *handlers) run(r *stdhttp.Request) (*pipeline.Result, error) {
	in, err := readUpload(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Reconcile(r.Context(), in)
}

func readUpload(r *stdhttp.Request) (domain.Upload, error) {
	var in domain.Upload
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		var tooBig *stdhttp.MaxBytesError
		if errors.As(err, &tooBig) {
			return in, perr.TooLargef("upload over %d bytes", tooBig.Limit)
		}
		return in, perr.WithOp(perr.Wrap(err, perr.ErrorCodeValidation, "expected a multipart/form-data upload"), "reconcile.readUpload")
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	var err error
	if in.Document, in.DocumentName, err = formFile(r, FieldDocument, true); err != nil {
		return in, err
	}
	if in.Names, _, err = formFile(r, FieldNames, true); err != nil {
		return in, err
	}
	if in.Details, _, err = formFile(r, FieldDetails, false); err != nil {
		return in, err
	}
	in.ShowFiles = boolParam(r, FieldShowFiles)
	in.Threshold, err = thresholdParam(r.FormValue(FieldThreshold))
	return in, err
}

func formFile(r *stdhttp.Request, field string, required bool) ([]byte, string, error) {
	f, hdr, err := r.FormFile(field)
	if errors.Is(err, stdhttp.ErrMissingFile) {
		if required {
			return nil, "", perr.WithField(perr.Validationf("%s file is required", field), field)
		}
		return nil, "", nil
	}
	if err != nil {
		return nil, "", perr.WithField(perr.Wrap(err, perr.ErrorCodeValidation, "unreadable upload"), field)
	}
	defer func() { _ = f.Close() }()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, "", perr.WithField(perr.Wrap(err, perr.ErrorCodeValidation, "unreadable upload"), field)
	}
	return b, hdr.Filename, nil
}

// thresholdParam parses an optional integer; range is checked by the pipeline
func thresholdParam(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, perr.WithField(perr.InvalidArgf("threshold must be an integer, got %q", s), FieldThreshold)
	}
	return &v, nil
}

func sortedParam(r *stdhttp.Request) bool { return boolParam(r, FieldSorted) }

// boolParam reads a flag from the query, then the multipart form; bad values are false
func boolParam(r *stdhttp.Request, field string) bool {
	v := r.URL.Query().Get(field)
	if v == "" && r.MultipartForm != nil {
		if vs := r.MultipartForm.Value[field]; len(vs) > 0 {
			v = vs[0]
		}
	}
	b, _ := strconv.ParseBool(v)
	return b
}
