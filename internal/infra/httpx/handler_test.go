package httpx_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lojavirtual/api/internal/core/service"
	"github.com/lojavirtual/api/internal/infra/adapters/memstore"
	"github.com/lojavirtual/api/internal/infra/adapters/uploads"
	"github.com/lojavirtual/api/internal/infra/httpx"
)

type envelope struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Error   string `json:"error"`
}

func newAPI(t *testing.T) http.Handler {
	t.Helper()

	store := memstore.New()
	files, err := uploads.NewDiskStorage(t.TempDir())
	require.NoError(t, err)

	h := httpx.NewHandler(
		service.NewCustomerService(store),
		service.NewProductService(store, files),
		service.NewOrderService(store),
		service.NewStatisticsService(store),
	)
	return httpx.NewRouter(h, files.Dir())
}

func doJSON(t *testing.T, api http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestCreateCustomer(t *testing.T) {
	api := newAPI(t)

	rec := doJSON(t, api, http.MethodPost, "/api/clientes", `{"name":"Maria","email":"maria@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)
	require.NotEmpty(t, env.ID)
}

func TestCreateCustomerInvalidJSON(t *testing.T) {
	api := newAPI(t)

	rec := doJSON(t, api, http.MethodPost, "/api/clientes", `{"name":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.False(t, env.Success)
	require.NotEmpty(t, env.Error)
}

func TestListCustomersNewestFirst(t *testing.T) {
	api := newAPI(t)

	var ids []string
	for _, name := range []string{"first", "second", "third"} {
		rec := doJSON(t, api, http.MethodPost, "/api/clientes", fmt.Sprintf(`{"name":%q}`, name))
		require.Equal(t, http.StatusOK, rec.Code)
		ids = append(ids, decodeEnvelope(t, rec).ID)
		time.Sleep(time.Millisecond)
	}

	rec := doJSON(t, api, http.MethodGet, "/api/clientes", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &docs))
	require.Len(t, docs, 3)
	require.Equal(t, ids[2], docs[0]["id"])
	require.Equal(t, ids[0], docs[2]["id"])
}

func productForm(t *testing.T, fields map[string]string, imageName, imageData string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if imageName != "" {
		fw, err := mw.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = fw.Write([]byte(imageData))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func TestCreateProductWithImage(t *testing.T) {
	api := newAPI(t)

	body, contentType := productForm(t, map[string]string{
		"name":        "Caneca",
		"description": "Caneca de cerâmica",
		"price":       "19.99",
		"stock":       "5",
	}, "caneca.png", "png-bytes")

	req := httptest.NewRequest(http.MethodPost, "/api/produtos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decodeEnvelope(t, rec).Success)

	list := doJSON(t, api, http.MethodGet, "/api/produtos", "")
	require.Equal(t, http.StatusOK, list.Code)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &docs))
	require.Len(t, docs, 1)
	require.Equal(t, 19.99, docs[0]["price"])
	require.Equal(t, float64(5), docs[0]["stock"])

	imageURL, ok := docs[0]["imageUrl"].(string)
	require.True(t, ok, "imageUrl must be set when an image is uploaded")

	// The returned path must be fetchable through the router.
	fetch := doJSON(t, api, http.MethodGet, imageURL, "")
	require.Equal(t, http.StatusOK, fetch.Code)
	require.Equal(t, "png-bytes", fetch.Body.String())
}

func TestCreateProductWithoutImage(t *testing.T) {
	api := newAPI(t)

	body, contentType := productForm(t, map[string]string{
		"name":  "Caneca",
		"price": "19.99",
		"stock": "5",
	}, "", "")

	req := httptest.NewRequest(http.MethodPost, "/api/produtos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	list := doJSON(t, api, http.MethodGet, "/api/produtos", "")
	var docs []map[string]any
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &docs))
	require.Len(t, docs, 1)
	require.Nil(t, docs[0]["imageUrl"])
}

func TestCreateProductMalformedPrice(t *testing.T) {
	api := newAPI(t)

	body, contentType := productForm(t, map[string]string{
		"name":  "Caneca",
		"price": "abc",
		"stock": "5",
	}, "", "")

	req := httptest.NewRequest(http.MethodPost, "/api/produtos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, decodeEnvelope(t, rec).Success)
}

func TestUpdateProduct(t *testing.T) {
	api := newAPI(t)

	body, contentType := productForm(t, map[string]string{
		"name": "Caneca", "price": "19.99", "stock": "5",
	}, "", "")
	req := httptest.NewRequest(http.MethodPost, "/api/produtos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	id := decodeEnvelope(t, rec).ID

	update := doJSON(t, api, http.MethodPut, "/api/produtos/"+id,
		`{"name":"Caneca grande","description":"500ml","price":24.9,"stock":12}`)
	require.Equal(t, http.StatusOK, update.Code)
	require.True(t, decodeEnvelope(t, update).Success)

	list := doJSON(t, api, http.MethodGet, "/api/produtos", "")
	var docs []map[string]any
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &docs))
	require.Equal(t, "Caneca grande", docs[0]["name"])
	require.Equal(t, 24.9, docs[0]["price"])
}

func TestUpdateProductUnknownID(t *testing.T) {
	api := newAPI(t)

	rec := doJSON(t, api, http.MethodPut, "/api/produtos/missing",
		`{"name":"x","description":"","price":1,"stock":1}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProductTwice(t *testing.T) {
	api := newAPI(t)

	body, contentType := productForm(t, map[string]string{
		"name": "Caneca", "price": "19.99", "stock": "5",
	}, "", "")
	req := httptest.NewRequest(http.MethodPost, "/api/produtos", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	id := decodeEnvelope(t, rec).ID

	first := doJSON(t, api, http.MethodDelete, "/api/produtos/"+id, "")
	require.Equal(t, http.StatusOK, first.Code)
	second := doJSON(t, api, http.MethodDelete, "/api/produtos/"+id, "")
	require.Equal(t, http.StatusOK, second.Code)

	list := doJSON(t, api, http.MethodGet, "/api/produtos", "")
	var docs []map[string]any
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &docs))
	require.Empty(t, docs)
}

func TestOrderStatusFlow(t *testing.T) {
	api := newAPI(t)

	rec := doJSON(t, api, http.MethodPost, "/api/pedidos", `{"customer":"Maria","total":42.5,"status":"shipped"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	id := decodeEnvelope(t, rec).ID

	list := doJSON(t, api, http.MethodGet, "/api/pedidos", "")
	var docs []map[string]any
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &docs))
	require.Len(t, docs, 1)
	require.Equal(t, "pending", docs[0]["status"], "client-supplied status must be ignored")

	update := doJSON(t, api, http.MethodPut, "/api/pedidos/"+id+"/status", `{"status":"shipped"}`)
	require.Equal(t, http.StatusOK, update.Code)

	list = doJSON(t, api, http.MethodGet, "/api/pedidos", "")
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &docs))
	require.Equal(t, "shipped", docs[0]["status"])
	require.Equal(t, 42.5, docs[0]["total"])
}

func TestUpdateOrderStatusMissingStatus(t *testing.T) {
	api := newAPI(t)

	rec := doJSON(t, api, http.MethodPost, "/api/pedidos", `{}`)
	id := decodeEnvelope(t, rec).ID

	update := doJSON(t, api, http.MethodPut, "/api/pedidos/"+id+"/status", `{}`)
	require.Equal(t, http.StatusBadRequest, update.Code)
}

func TestUpdateOrderStatusUnknownID(t *testing.T) {
	api := newAPI(t)

	rec := doJSON(t, api, http.MethodPut, "/api/pedidos/missing/status", `{"status":"shipped"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatistics(t *testing.T) {
	api := newAPI(t)

	var shippedID string
	for i, body := range []string{
		`{"total":10.50}`,
		`{"total":0}`,
		`{}`,
		`{"total":25.00}`,
	} {
		rec := doJSON(t, api, http.MethodPost, "/api/pedidos", body)
		require.Equal(t, http.StatusOK, rec.Code)
		if i == 2 {
			shippedID = decodeEnvelope(t, rec).ID
		}
	}
	update := doJSON(t, api, http.MethodPut, "/api/pedidos/"+shippedID+"/status", `{"status":"shipped"}`)
	require.Equal(t, http.StatusOK, update.Code)

	pBody, contentType := productForm(t, map[string]string{
		"name": "Caneca", "price": "19.99", "stock": "5",
	}, "", "")
	req := httptest.NewRequest(http.MethodPost, "/api/produtos", pBody)
	req.Header.Set("Content-Type", contentType)
	api.ServeHTTP(httptest.NewRecorder(), req)

	for i := 0; i < 2; i++ {
		doJSON(t, api, http.MethodPost, "/api/clientes", `{"name":"c"}`)
	}

	rec := doJSON(t, api, http.MethodGet, "/api/estatisticas", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats struct {
		TotalOrders    int    `json:"totalOrders"`
		TotalSales     string `json:"totalSales"`
		TotalProducts  int    `json:"totalProducts"`
		TotalCustomers int    `json:"totalCustomers"`
		PendingOrders  int    `json:"pendingOrders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.Equal(t, 4, stats.TotalOrders)
	require.Equal(t, "35.50", stats.TotalSales)
	require.Equal(t, 1, stats.TotalProducts)
	require.Equal(t, 2, stats.TotalCustomers)
	require.Equal(t, 3, stats.PendingOrders)
}

func TestHealth(t *testing.T) {
	api := newAPI(t)

	rec := doJSON(t, api, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
}
