package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"igreja_backend/internal/repositories"
)

// ReceiptService renders the donation receipt PDF.
type ReceiptService struct {
	Donations repositories.DonationRepo
	Loader    func(context.Context, int64) (receiptData, error)
}

type receiptData struct {
	DonationID int64
	MemberName string
	Amount     float64
	Type       string
	Method     string
	Date       string
	Notes      string
}

var donationTypeLabel = map[string]string{
	"dizimo":  "Dízimo",
	"oferta":  "Oferta",
	"missoes": "Missões",
	"outro":   "Outro",
}

func (s ReceiptService) GenerateReceipt(ctx context.Context, donationID int64) ([]byte, string, error) {
	data, err := s.loadReceiptData(ctx, donationID)
	if err != nil {
		return nil, "", err
	}
	return buildReceiptPDF(data)
}

func (s ReceiptService) loadReceiptData(ctx context.Context, donationID int64) (receiptData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, donationID)
	}

	record, err := s.Donations.GetWithMember(ctx, donationID)
	if err != nil {
		return receiptData{}, err
	}

	out := receiptData{DonationID: donationID}
	out.Amount = asAmount(record["valor"])
	if v, ok := record["tipo"].(string); ok {
		out.Type = v
	}
	if v, ok := record["metodo_pagamento"].(string); ok {
		out.Method = v
	}
	if v, ok := record["data"].(string); ok {
		out.Date = v
	}
	if v, ok := record["observacao"].(string); ok {
		out.Notes = v
	}
	if member, ok := record["membro"].(map[string]any); ok {
		if nome, ok := member["nome"].(string); ok {
			out.MemberName = nome
		}
	}
	return out, nil
}

func buildReceiptPDF(d receiptData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Recibo de Doação", true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.Cell(0, 10, tr("RECIBO DE DOAÇÃO"))
	pdf.Ln(14)

	tipo := donationTypeLabel[d.Type]
	if tipo == "" {
		tipo = d.Type
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Recibo nº      : %d", d.DonationID),
		fmt.Sprintf("Doador         : %s", safe(d.MemberName, "Anônimo")),
		fmt.Sprintf("Valor          : R$ %.2f", d.Amount),
		fmt.Sprintf("Tipo           : %s", tipo),
		fmt.Sprintf("Forma          : %s", safe(d.Method, "-")),
		fmt.Sprintf("Data           : %s", safe(dateOnly(d.Date), "-")),
	}
	if strings.TrimSpace(d.Notes) != "" {
		lines = append(lines, fmt.Sprintf("Observação     : %s", d.Notes))
	}
	for _, line := range lines {
		pdf.Cell(0, 8, tr(line))
		pdf.Ln(8)
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Emitido em %s", time.Now().Format("02/01/2006 15:04"))))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("recibo-doacao-%d.pdf", d.DonationID)
	return buf.Bytes(), filename, nil
}

// asAmount accepts the two shapes a NUMERIC column reaches us in: a float64
// from drivers that convert, or the numeric text Postgres emits.
func asAmount(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	case []byte:
		return asAmount(string(n))
	}
	return 0
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// dateOnly keeps the YYYY-MM-DD prefix of a timestamp-ish string.
func dateOnly(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
