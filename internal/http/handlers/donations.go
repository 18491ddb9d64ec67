package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"igreja_backend/internal/cache"
	"igreja_backend/internal/repositories"
	"igreja_backend/internal/services"
	"igreja_backend/internal/validation"
)

var donationTypes = []string{"dizimo", "oferta", "missoes", "outro"}
var paymentMethods = []string{"dinheiro", "pix", "cartao", "transferencia"}

var donationCreateSchema = validation.Schema{Fields: []validation.Field{
	{Name: "amount", Kind: validation.Float, Required: true, Positive: true},
	{Name: "type", Kind: validation.String, Required: true, Enum: donationTypes},
	{Name: "memberId", Kind: validation.Int, Positive: true},
	{Name: "date", Kind: validation.Date, Required: true},
	{Name: "paymentMethod", Kind: validation.String, Enum: paymentMethods},
	{Name: "notes", Kind: validation.String, MaxLen: 500},
}}

var donationUpdateSchema = validation.Schema{Fields: []validation.Field{
	{Name: "amount", Kind: validation.Float, Positive: true},
	{Name: "type", Kind: validation.String, Enum: donationTypes},
	{Name: "memberId", Kind: validation.Int, Positive: true},
	{Name: "date", Kind: validation.Date},
	{Name: "paymentMethod", Kind: validation.String, Enum: paymentMethods},
	{Name: "notes", Kind: validation.String, MaxLen: 500},
}}

type DonationHandler struct {
	Crud
	Donations repositories.DonationRepo
	Stats     services.StatsService
	Receipts  services.ReceiptService
}

func NewDonationHandler(repo repositories.DonationRepo, c *cache.Cache, stats services.StatsService) DonationHandler {
	return DonationHandler{
		Crud: Crud{
			Repo:    repo.Repository,
			Cache:   c,
			Create:  donationCreateSchema,
			Update:  donationUpdateSchema,
			Filters: repositories.DonationFilters,
			Msg: Messages{
				Created: "doação registrada com sucesso",
				Updated: "doação atualizada com sucesso",
				Deleted: "doação removida com sucesso",
			},
		},
		Donations: repo,
		Stats:     stats,
		Receipts:  services.ReceiptService{Donations: repo},
	}
}

// Get returns the donation with its member nested under "membro".
func (h DonationHandler) Get(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	record, err := h.Donations.GetWithMember(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, h.Repo.Entity.ToPublic(record), "")
}

func (h DonationHandler) DonationStats(c *gin.Context) {
	stats, err := h.Stats.DonationStats(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, stats, "")
}

func (h DonationHandler) DonationInfo(c *gin.Context) {
	info, err := h.Stats.DonationInfo(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, info, "")
}

// Receipt streams the donation receipt as a PDF attachment.
func (h DonationHandler) Receipt(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	pdf, filename, err := h.Receipts.GenerateReceipt(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
