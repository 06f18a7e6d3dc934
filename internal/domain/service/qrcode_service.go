package service

import "github.com/google/uuid"

// QRCodeService renders share links as QR code images.
type QRCodeService interface {
	// GenerateOfferQR renders a PNG QR code pointing at the public page of
	// the given offer.
	GenerateOfferQR(offerID uuid.UUID) ([]byte, error)
}
