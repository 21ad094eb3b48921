package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-booking/internal/auth"
	"github.com/BruksfildServices01/salon-booking/internal/domain/identity"
	"github.com/BruksfildServices01/salon-booking/internal/domain/salon"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	identityuc "github.com/BruksfildServices01/salon-booking/internal/usecase/identity"
	salonuc "github.com/BruksfildServices01/salon-booking/internal/usecase/salon"
	"github.com/BruksfildServices01/salon-booking/internal/validators"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validators.Register(); err != nil {
		panic(err)
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// ======================================================
// UPLOAD
// ======================================================

type memStore struct {
	keys []string
	err  error
}

func (s *memStore) Put(_ context.Context, key, _ string, _ []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.keys = append(s.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func uploadRequest(t *testing.T, field, filename, contentType string, payload []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads/salon-image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func uploadRouter(store *memStore, transcode Transcoder) *gin.Engine {
	r := gin.New()
	r.POST("/uploads/salon-image", NewUploadHandler(store, transcode, nil).SalonImage)
	return r
}

func passthrough(r io.Reader) ([]byte, error) { return io.ReadAll(r) }

func TestUploadSalonImage(t *testing.T) {
	store := &memStore{}
	w := httptest.NewRecorder()
	uploadRouter(store, passthrough).ServeHTTP(w, uploadRequest(t, "salonImage", "shop.PNG", "image/png", []byte("png")))

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	require.Len(t, store.keys, 1)
	assert.Regexp(t, `^salon-\d+-\d+\.webp$`, store.keys[0])
	assert.Equal(t, "https://cdn.example.com/"+store.keys[0], body["imageUrl"])
}

func TestUploadRejects(t *testing.T) {
	tests := []struct {
		name      string
		req       func(t *testing.T) *http.Request
		transcode Transcoder
		code      string
	}{
		{
			name:      "wrong field",
			req:       func(t *testing.T) *http.Request { return uploadRequest(t, "file", "a.png", "image/png", []byte("x")) },
			transcode: passthrough,
			code:      "missing_file",
		},
		{
			name: "pdf",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "salonImage", "a.pdf", "application/pdf", []byte("x"))
			},
			transcode: passthrough,
			code:      "unsupported_file_type",
		},
		{
			name: "renamed extension",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "salonImage", "a.png", "text/plain", []byte("x"))
			},
			transcode: passthrough,
			code:      "unsupported_file_type",
		},
		{
			name: "undecodable",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "salonImage", "a.jpg", "image/jpeg", []byte("x"))
			},
			transcode: func(io.Reader) ([]byte, error) {
				return nil, errors.New("decode image: unknown format")
			},
			code: "invalid_image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			uploadRouter(&memStore{}, tt.transcode).ServeHTTP(w, tt.req(t))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, decode(t, w)["error_code"])
		})
	}
}

func TestUploadStoreFailure(t *testing.T) {
	w := httptest.NewRecorder()
	uploadRouter(&memStore{err: errors.New("s3 down")}, passthrough).
		ServeHTTP(w, uploadRequest(t, "salonImage", "a.gif", "image/gif", []byte("gif")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "upload_failed", body["error_code"])
	assert.NotContains(t, w.Body.String(), "s3 down")
}

// ======================================================
// PUBLIC SALONS
// ======================================================

type directoryRepo struct {
	salon.Repository
	salons []models.Salon
}

func (r directoryRepo) SearchSalons(context.Context, salon.SearchQuery) ([]models.Salon, error) {
	return r.salons, nil
}

func (r directoryRepo) GetSalon(_ context.Context, id string) (*models.Salon, error) {
	for i := range r.salons {
		if r.salons[i].ID == id {
			return &r.salons[i], nil
		}
	}
	return nil, httperr.NotFound("salon_not_found", "Salon not found.")
}

func f64(v float64) *float64 { return &v }

func publicRouter() *gin.Engine {
	repo := directoryRepo{salons: []models.Salon{
		{ID: "far", SalonName: "Far", Latitude: f64(13.08), Longitude: f64(80.27), Services: []models.SalonService{{Name: "Haircut"}, {Name: "Shave"}}},
		{ID: "near", SalonName: "Near", Latitude: f64(12.97), Longitude: f64(77.59)},
		{ID: "nowhere", SalonName: "Nowhere"},
	}}
	h := NewPublicHandler(salonuc.NewListSalons(repo), salonuc.NewGetSalon(repo), salonuc.NewServiceCatalog(repo))

	r := gin.New()
	r.GET("/salons", h.ListSalons)
	r.GET("/salons/:id", h.GetSalon)
	return r
}

func TestListSalonsByDistance(t *testing.T) {
	w := httptest.NewRecorder()
	publicRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salons?sort=distance&lat=12.9&lon=77.6", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    []struct {
			ID       string   `json:"id"`
			Services string   `json:"services"`
			Distance *float64 `json:"distance"`
		} `json:"data"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 3, body.Total)

	assert.Equal(t, "near", body.Data[0].ID)
	assert.Equal(t, "far", body.Data[1].ID)
	assert.Equal(t, "Haircut, Shave", body.Data[1].Services)
	assert.Equal(t, "nowhere", body.Data[2].ID)
	assert.Nil(t, body.Data[2].Distance)
	require.NotNil(t, body.Data[0].Distance)
}

func TestListSalonsBadCoordinates(t *testing.T) {
	w := httptest.NewRecorder()
	publicRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salons?lat=abc&lon=1", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_location", decode(t, w)["error_code"])
}

func TestGetSalonNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	publicRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/salons/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])
}

// ======================================================
// CUSTOMER AUTH
// ======================================================

type identityRepo struct {
	identity.Repository
	customers map[string]*models.Customer
}

func (r *identityRepo) FindCustomerByPhone(_ context.Context, phone string) (*models.Customer, error) {
	for _, c := range r.customers {
		if c.PhoneNumber == phone {
			return c, nil
		}
	}
	return nil, httperr.NotFound("user_not_found", "User not found.")
}

func (r *identityRepo) CreateCustomer(_ context.Context, c *models.Customer) error {
	r.customers[c.ID] = c
	return nil
}

type stubOTP struct{ code string }

func (s stubOTP) Send(context.Context, string, identity.Mode) error { return nil }

func (s stubOTP) Check(_ context.Context, _ string, _ identity.Mode, code string) (bool, error) {
	return code == s.code, nil
}

func authRouter() (*gin.Engine, *identityRepo) {
	repo := &identityRepo{customers: map[string]*models.Customer{}}
	otp := stubOTP{code: "123456"}
	tokens := auth.NewTokenService("secret", 0)

	h := NewAuthHandler(
		identityuc.NewSendOTP(repo, otp, nil, nil),
		identityuc.NewVerifyCustomerOTP(repo, otp, tokens, nil),
		repo,
	)
	r := gin.New()
	r.POST("/auth/send-otp", h.SendOTP)
	r.POST("/auth/verify-otp", h.VerifyOTP)
	return r, repo
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCustomerOTPFlow(t *testing.T) {
	r, repo := authRouter()

	w := postJSON(r, "/auth/send-otp", `{"phoneNumber":"9876543210","mode":"user-login"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = postJSON(r, "/auth/send-otp", `{"phoneNumber":"9876543210","mode":"salon-login"}`)
	assert.Equal(t, "invalid_mode", decode(t, w)["error_code"])

	w = postJSON(r, "/auth/send-otp", `{"phoneNumber":"9876543210","mode":"user-signup"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/auth/verify-otp", `{"phoneNumber":"9876543210","otp":"12ab","mode":"user-signup","name":"Ravi"}`)
	assert.Equal(t, "invalid_request", decode(t, w)["error_code"])

	w = postJSON(r, "/auth/verify-otp", `{"phoneNumber":"9876543210","otp":"654321","mode":"user-signup","name":"Ravi"}`)
	assert.Equal(t, "invalid_otp", decode(t, w)["error_code"])

	w = postJSON(r, "/auth/verify-otp", `{"phoneNumber":"9876543210","otp":"123456","mode":"user-signup","name":"Ravi"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "Ravi", user["fullName"])
	assert.Equal(t, false, user["isPartner"])
	assert.Len(t, repo.customers, 1)
}
