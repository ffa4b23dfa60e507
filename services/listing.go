package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/shopswift/ebay-autolister/ebay"
)

// ListingService creates and publishes sales offers for inventory SKUs.
// Creating and publishing are independent calls; a publish failure leaves
// the created offer unpublished on the marketplace.
type ListingService struct {
	api      ebay.API
	currency string
	policies ebay.ListingPolicies
	logger   *zap.Logger
}

// NewListingService creates a ListingService. Offers are priced in the
// given currency and reference the given business policy ids.
func NewListingService(api ebay.API, currency string, policies ebay.ListingPolicies, logger *zap.Logger) *ListingService {
	if currency == "" {
		currency = "USD"
	}
	return &ListingService{api: api, currency: currency, policies: policies, logger: logger}
}

// CreateOffer creates a fixed-price offer for an inventory SKU and
// returns the new offer id.
func (s *ListingService) CreateOffer(ctx context.Context, sku, categoryID string, price float64, marketplaceID string) (string, error) {
	offer := ebay.Offer{
		SKU:               sku,
		MarketplaceID:     marketplaceID,
		Format:            "FIXED_PRICE",
		AvailableQuantity: 1,
		CategoryID:        categoryID,
		PricingSummary: &ebay.PricingSummary{
			Price: &ebay.Amount{Value: formatPrice(price), Currency: s.currency},
		},
		ListingPolicies: &ebay.ListingPolicies{
			FulfillmentPolicyID: s.policies.FulfillmentPolicyID,
			PaymentPolicyID:     s.policies.PaymentPolicyID,
			ReturnPolicyID:      s.policies.ReturnPolicyID,
		},
	}

	var resp ebay.OfferResponse
	if err := s.api.Do(ctx, http.MethodPost, "/offer", offer, &resp); err != nil {
		s.logger.Error("failed to create offer",
			zap.String("sku", sku), zap.Error(err))
		return "", fmt.Errorf("create offer for %s: %w", sku, err)
	}

	s.logger.Info("created offer",
		zap.String("offer_id", resp.OfferID), zap.String("sku", sku))
	return resp.OfferID, nil
}

// PublishOffer publishes a created offer, making the listing live.
func (s *ListingService) PublishOffer(ctx context.Context, offerID string) error {
	var resp ebay.PublishResponse
	path := "/offer/" + url.PathEscape(offerID) + "/publish"

	if err := s.api.Do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		s.logger.Error("failed to publish offer",
			zap.String("offer_id", offerID), zap.Error(err))
		return fmt.Errorf("publish offer %s: %w", offerID, err)
	}

	s.logger.Info("published offer",
		zap.String("offer_id", offerID), zap.String("listing_id", resp.ListingID))
	return nil
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}
