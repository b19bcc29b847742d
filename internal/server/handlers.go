package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"fjacquet/dre-report/internal/dashboard"
	"fjacquet/dre-report/internal/dataset"
	"fjacquet/dre-report/internal/export"
	"fjacquet/dre-report/internal/logging"
	"fjacquet/dre-report/internal/viewstate"
)

type pageData struct {
	Dashboard  dashboard.Dashboard
	HasData    bool
	Message    string
	Error      string
	ChartsJSON template.JS
	Query      string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	d, ok := s.view(r)
	data := pageData{
		Dashboard: d,
		HasData:   ok,
		Error:     r.URL.Query().Get("error"),
		Message:   r.URL.Query().Get("msg"),
		Query:     filterQuery(filtersFrom(r)),
	}
	if !ok {
		data.Dashboard.Filters = filtersFrom(r)
		if data.Message == "" {
			data.Message = MsgNoData
		}
	} else {
		charts, err := json.Marshal(d.Charts)
		if err != nil {
			http.Error(w, "failed to encode charts", http.StatusInternalServerError)
			return
		}
		data.ChartsJSON = template.JS(charts) // #nosec G203 -- produced by json.Marshal
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "dashboard.html", data); err != nil {
		s.logger.WithError(err).Error("Failed to render dashboard")
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, ok := s.view(r)
	if !ok {
		s.writeError(w, http.StatusConflict, MsgNoData)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleStores(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, viewstate.Stores(s.session.Snapshot().Records))
}

type uploadResponse struct {
	Records int    `json:"records"`
	Warning string `json:"warning,omitempty"`
}

// upload reads the multipart "file" field and replaces the working set.
func (s *Server) upload(w http.ResponseWriter, r *http.Request) (*dataset.Dataset, int, error) {
	if s.datasets == nil {
		return nil, http.StatusServiceUnavailable, fmt.Errorf("uploads are disabled")
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("invalid upload: %w", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("missing file field: %w", err)
	}
	defer file.Close()

	ds, err := s.datasets.Upload(r.Context(), header.Filename, file)
	if err != nil {
		s.logger.WithError(err).Warn("Rejected upload", logging.F(logging.FieldFile, header.Filename))
		return nil, uploadStatus(err), err
	}
	s.session.Replace(ds.Records)
	return ds, http.StatusOK, nil
}

func storeWarning(ds *dataset.Dataset) string {
	if ds.StoreErr == nil {
		return ""
	}
	return fmt.Sprintf("Dados carregados, mas não foi possível salvar: %v", ds.StoreErr)
}

func (s *Server) handleAPIUpload(w http.ResponseWriter, r *http.Request) {
	ds, status, err := s.upload(w, r)
	if err != nil {
		s.writeError(w, status, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, uploadResponse{Records: len(ds.Records), Warning: storeWarning(ds)})
}

func (s *Server) handleFormUpload(w http.ResponseWriter, r *http.Request) {
	ds, _, err := s.upload(w, r)
	target := url.Values{}
	if err != nil {
		target.Set("error", err.Error())
	} else if warning := storeWarning(ds); warning != "" {
		target.Set("error", warning)
	} else {
		target.Set("msg", fmt.Sprintf("%d registros carregados.", len(ds.Records)))
	}
	http.Redirect(w, r, "/?"+target.Encode(), http.StatusSeeOther)
}

func (s *Server) handleExportSummary(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := s.view(r)
		if !ok {
			s.writeError(w, http.StatusConflict, MsgNoData)
			return
		}

		var buf bytes.Buffer
		if err := export.WriteSummary(&buf, d.Summary, format, s.opts.Export); err != nil {
			s.logger.WithError(err).Error("Failed to export summary", logging.F(logging.FieldFormat, format))
			http.Error(w, "failed to export summary", http.StatusInternalServerError)
			return
		}

		name := s.opts.ExportFile
		switch format {
		case export.FormatXLSX:
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		default:
			name = "Resumo_Plano_De_Contas.csv"
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		_, _ = buf.WriteTo(w)
	}
}

func (s *Server) handleExportRows(w http.ResponseWriter, r *http.Request) {
	d, ok := s.view(r)
	if !ok {
		s.writeError(w, http.StatusConflict, MsgNoData)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteRowsCSV(&buf, d.Table, s.exportDelimiter()); err != nil {
		s.logger.WithError(err).Error("Failed to export rows")
		http.Error(w, "failed to export rows", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="lancamentos.csv"`)
	_, _ = buf.WriteTo(w)
}

func (s *Server) exportDelimiter() rune {
	if s.opts.Export.Delimiter == 0 {
		return ','
	}
	return s.opts.Export.Delimiter
}

func filterQuery(f viewstate.Filters) string {
	v := url.Values{}
	if f.Store != "" {
		v.Set("store", f.Store)
	}
	if f.Account != "" {
		v.Set("account", f.Account)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
