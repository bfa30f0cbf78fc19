// internal/services/address_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vanleybasso/ladiversite/internal/config"
)

var (
	ErrInvalidCEP        = errors.New("cep must have exactly 8 digits")
	ErrCEPNotFound       = errors.New("cep not found")
	ErrLookupUnavailable = errors.New("postal lookup unavailable")
)

var cepDigits = regexp.MustCompile(`^[0-9]{8}$`)

// Address is the autofill payload for the checkout form. Lookups only cover
// Brazilian CEPs, so the country is fixed.
type Address struct {
	ZipCode       string `json:"zip_code"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Country       string `json:"country"`
}

// AddressService resolves a CEP against ViaCEP, falling back to BrasilAPI
// when the primary times out or errors. Both failing is non-fatal for the
// checkout: the shopper fills the form manually.
type AddressService struct {
	client           *http.Client
	viaCEPBaseURL    string
	brasilAPIBaseURL string
}

func NewAddressService(cfg config.LookupConfig) *AddressService {
	return &AddressService{
		client:           &http.Client{Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond},
		viaCEPBaseURL:    cfg.ViaCEPBaseURL,
		brasilAPIBaseURL: cfg.BrasilAPIBaseURL,
	}
}

func (s *AddressService) Lookup(ctx context.Context, cep string) (*Address, error) {
	if !cepDigits.MatchString(cep) {
		return nil, ErrInvalidCEP
	}

	addr, err := s.lookupViaCEP(ctx, cep)
	if err == nil || errors.Is(err, ErrCEPNotFound) {
		return addr, err
	}

	logrus.WithError(err).WithField("cep", cep).Warn("Primary CEP lookup failed, trying fallback")

	addr, ferr := s.lookupBrasilAPI(ctx, cep)
	if ferr == nil || errors.Is(ferr, ErrCEPNotFound) {
		return addr, ferr
	}

	return nil, fmt.Errorf("%w: %v", ErrLookupUnavailable, ferr)
}

func (s *AddressService) lookupViaCEP(ctx context.Context, cep string) (*Address, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", s.viaCEPBaseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("viacep status %d", res.StatusCode)
	}

	var payload struct {
		Erro       bool   `json:"erro"`
		Logradouro string `json:"logradouro"`
		Localidade string `json:"localidade"`
		UF         string `json:"uf"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}

	if payload.Erro {
		return nil, ErrCEPNotFound
	}

	return &Address{
		ZipCode:       cep,
		StreetAddress: payload.Logradouro,
		City:          payload.Localidade,
		State:         payload.UF,
		Country:       "Brasil",
	}, nil
}

func (s *AddressService) lookupBrasilAPI(ctx context.Context, cep string) (*Address, error) {
	url := fmt.Sprintf("%s/api/cep/v1/%s", s.brasilAPIBaseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrCEPNotFound
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brasilapi status %d", res.StatusCode)
	}

	var payload struct {
		Street string `json:"street"`
		City   string `json:"city"`
		State  string `json:"state"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}

	return &Address{
		ZipCode:       cep,
		StreetAddress: payload.Street,
		City:          payload.City,
		State:         payload.State,
		Country:       "Brasil",
	}, nil
}
