package service

import (
	config "github.com/maheshrc27/insta-signature/configs"
	"github.com/maheshrc27/insta-signature/internal/transfer"
)

type SignatureService interface {
	GetSignatureConfig() transfer.SignatureConfig
}

type signatureService struct {
	load func() config.Signature
}

// NewSignatureService reads identity fields on every call; they are cheap and
// may change between requests in stateless deployments.
func NewSignatureService() SignatureService {
	return &signatureService{load: config.LoadSignature}
}

func (s *signatureService) GetSignatureConfig() transfer.SignatureConfig {
	sig := s.load()
	return transfer.SignatureConfig{
		Name:    sig.Name,
		Title:   sig.Title,
		Company: sig.Company,
		Email:   sig.Email,
		Phone:   sig.Phone,
		Mobile:  sig.Mobile,
		Website: sig.Website,
		Address: sig.Address,
		Zip:     sig.Zip,
		City:    sig.City,
		Country: sig.Country,
	}
}
