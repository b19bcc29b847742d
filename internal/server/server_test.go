package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fjacquet/dre-report/internal/aggregator"
	"fjacquet/dre-report/internal/dataset"
	"fjacquet/dre-report/internal/export"
	"fjacquet/dre-report/internal/logging"
	"fjacquet/dre-report/internal/spreadsheet"
	"fjacquet/dre-report/internal/store"
	"fjacquet/dre-report/internal/viewstate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upload = "Descrição;Plano de contas;Conta bancária;Loja;Data;Valor\n" +
	"Venda;Vendas;Itaú;Centro;01/03/2024;100,50\n" +
	"Balcão;Vendas no Balcão;Itaú;Centro;15/03/2024;50,00\n" +
	"Aluguel;Aluguel;Itaú;Norte;02/03/2024;-200,00\n"

func newTestServer(t *testing.T, st store.DatasetStore) *Server {
	t.Helper()
	logger := logging.NewMockLogger()
	svc := dataset.NewService(spreadsheet.NewLoader(spreadsheet.Options{}, logger), st, true, logger)
	srv, err := NewServer(Options{
		Addr:       "127.0.0.1:0",
		Aggregator: aggregator.DefaultOptions(),
		Export:     export.Options{Delimiter: ';'},
	}, svc, viewstate.NewSession(), logger)
	require.NoError(t, err)
	return srv
}

func multipartBody(t *testing.T, name, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func doUpload(t *testing.T, srv *Server, path, name, content string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, name, content)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func get(srv *Server, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestDashboard_NoData(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := get(srv, "/api/dashboard")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nenhum dado carregado")

	assert.Equal(t, http.StatusConflict, get(srv, "/export/summary.csv").Code)

	page := get(srv, "/")
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Nenhum dado carregado")
}

func TestUploadAndDashboard(t *testing.T) {
	st := store.NewMemoryStore()
	srv := newTestServer(t, st)

	rec := doUpload(t, srv, "/api/upload", "dados.csv", upload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp uploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Records)
	assert.Empty(t, resp.Warning)
	assert.Equal(t, 1, st.Saves())

	rec = get(srv, "/api/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	var d map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	cards := d["cards"].(map[string]interface{})
	assert.Equal(t, "100.5", cards["total_sales"])
	assert.Equal(t, "50", cards["total_counter_sales"])

	rec = get(srv, "/api/dashboard?store=norte")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, float64(1), d["filtered_count"])
	assert.Equal(t, float64(3), d["record_count"])

	page := get(srv, "/?account=vendas")
	assert.Equal(t, http.StatusOK, page.Code)
	body := page.Body.String()
	assert.Contains(t, body, "R$ 100,50")
	assert.Contains(t, body, "Plano de Contas")
	assert.Contains(t, body, `"income"`)
}

func TestUpload_Rejected(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doUpload(t, srv, "/api/upload", "dados.csv", "Descrição;Valor\nx;1\n")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing required columns")

	rec = doUpload(t, srv, "/api/upload", "vazio.csv", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader("not multipart"))
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpload_StoreFailureStillLoads(t *testing.T) {
	st := store.NewMemoryStore()
	st.SaveError = errors.New("offline")
	srv := newTestServer(t, st)

	rec := doUpload(t, srv, "/api/upload", "dados.csv", upload)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "offline")
	assert.Equal(t, http.StatusOK, get(srv, "/api/dashboard").Code)
}

func TestFormUploadRedirects(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := doUpload(t, srv, "/upload", "dados.csv", upload)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "msg=")

	rec = doUpload(t, srv, "/upload", "dados.pdf", "x")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "error=")
}

func TestExports(t *testing.T) {
	srv := newTestServer(t, nil)
	require.Equal(t, http.StatusOK, doUpload(t, srv, "/api/upload", "dados.csv", upload).Code)

	rec := get(srv, "/export/summary.csv?store=Centro")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Resumo_Plano_De_Contas.csv")
	table, err := export.ReadSummaryCSV(rec.Body, ';')
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Vendas", table.Rows[0].Category)

	rec = get(srv, "/export/summary.xlsx")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), export.DefaultFileName)
	table, err = export.ReadSummaryXLSX(rec.Body, export.DefaultSheetName)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 3)

	rec = get(srv, "/export/rows.csv?account=aluguel")
	require.Equal(t, http.StatusOK, rec.Code)
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Aluguel;Aluguel;Itaú;Norte;02/03/2024;-200.00", lines[1])
}

func TestStoresEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	require.Equal(t, http.StatusOK, doUpload(t, srv, "/api/upload", "dados.csv", upload).Code)

	rec := get(srv, "/api/stores")
	var stores []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stores))
	assert.Equal(t, []string{"Centro", "Norte"}, stores)
}

func TestRun_StopsOnCancel(t *testing.T) {
	srv := newTestServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, srv.Run(ctx))
}
