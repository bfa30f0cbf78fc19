// internal/services/address_service_test.go
package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanleybasso/ladiversite/internal/config"
)

func newAddressService(viaCEPURL, brasilAPIURL string) *AddressService {
	return NewAddressService(config.LookupConfig{
		ViaCEPBaseURL:    viaCEPURL,
		BrasilAPIBaseURL: brasilAPIURL,
		TimeoutMs:        2000,
	})
}

func TestAddressLookupViaCEP(t *testing.T) {
	viaCEP := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/01310100/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"logradouro":"Avenida Paulista","localidade":"São Paulo","uf":"SP"}`))
	}))
	defer viaCEP.Close()

	svc := newAddressService(viaCEP.URL, "http://unused.invalid")

	addr, err := svc.Lookup(context.Background(), "01310100")
	require.NoError(t, err)
	assert.Equal(t, "Avenida Paulista", addr.StreetAddress)
	assert.Equal(t, "São Paulo", addr.City)
	assert.Equal(t, "SP", addr.State)
	assert.Equal(t, "Brasil", addr.Country)
	assert.Equal(t, "01310100", addr.ZipCode)
}

func TestAddressLookupInvalidCEP(t *testing.T) {
	svc := newAddressService("http://unused.invalid", "http://unused.invalid")

	for _, cep := range []string{"", "1234567", "123456789", "01310-100", "abcdefgh"} {
		_, err := svc.Lookup(context.Background(), cep)
		assert.ErrorIs(t, err, ErrInvalidCEP, "cep %q", cep)
	}
}

func TestAddressLookupViaCEPErroFlag(t *testing.T) {
	// ViaCEP signals an unknown CEP with HTTP 200 and {"erro": true}; that
	// must not trigger the fallback.
	fallbackCalled := false

	viaCEP := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"erro": true}`))
	}))
	defer viaCEP.Close()

	brasilAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fallbackCalled = true
	}))
	defer brasilAPI.Close()

	svc := newAddressService(viaCEP.URL, brasilAPI.URL)

	_, err := svc.Lookup(context.Background(), "99999999")
	assert.ErrorIs(t, err, ErrCEPNotFound)
	assert.False(t, fallbackCalled)
}

func TestAddressLookupFallbackToBrasilAPI(t *testing.T) {
	viaCEP := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer viaCEP.Close()

	brasilAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cep/v1/01310100", r.URL.Path)
		w.Write([]byte(`{"street":"Avenida Paulista","city":"São Paulo","state":"SP"}`))
	}))
	defer brasilAPI.Close()

	svc := newAddressService(viaCEP.URL, brasilAPI.URL)

	addr, err := svc.Lookup(context.Background(), "01310100")
	require.NoError(t, err)
	assert.Equal(t, "Avenida Paulista", addr.StreetAddress)
	assert.Equal(t, "Brasil", addr.Country)
}

func TestAddressLookupBothUpstreamsDown(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()

	svc := newAddressService(down.URL, down.URL)

	_, err := svc.Lookup(context.Background(), "01310100")
	assert.ErrorIs(t, err, ErrLookupUnavailable)
}

func TestAddressLookupFallbackNotFound(t *testing.T) {
	viaCEP := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer viaCEP.Close()

	brasilAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer brasilAPI.Close()

	svc := newAddressService(viaCEP.URL, brasilAPI.URL)

	_, err := svc.Lookup(context.Background(), "99999999")
	assert.ErrorIs(t, err, ErrCEPNotFound)
}
