// internal/handlers/address.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vanleybasso/ladiversite/internal/i18n"
	"github.com/vanleybasso/ladiversite/internal/services"
	"github.com/vanleybasso/ladiversite/internal/utils"
)

type AddressHandler struct {
	addressService *services.AddressService
}

func NewAddressHandler(addressService *services.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// GET /address/:cep
func (h *AddressHandler) LookupCEP(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	address, err := h.addressService.Lookup(c.Request.Context(), c.Param("cep"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCEP):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCepInvalid), nil)
		case errors.Is(err, services.ErrCEPNotFound):
			utils.NotFoundResponse(c, i18n.KeyCepNotFound)
		case errors.Is(err, services.ErrLookupUnavailable):
			utils.BadGatewayResponse(c, i18n.T(lang, i18n.KeyCepUnavailable))
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"address": address,
	})
}
