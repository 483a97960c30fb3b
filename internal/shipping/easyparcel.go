package shipping

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RateReq describes a shipping rate request.
type RateReq struct {
	PickupPostcode  string
	DeliverPostcode string
	WeightKg        float64
	Courier         string
}

// Rate describes a returned shipping rate option.
type Rate struct {
	Service string `json:"service"`
	Price   int64  `json:"priceSen"`
	ETD     string `json:"etd"`
	Courier string `json:"courier,omitempty"`
}

// Client defines the behaviour required to quote shipping rates.
type Client interface {
	Rates(ctx context.Context, r RateReq) ([]Rate, error)
}

// EasyParcel talks to the EasyParcel API for rate checking and tracking.
// Credentials come from the TTL cache so key rotation needs no redeploy.
type EasyParcel struct {
	BaseURL    string
	HTTPClient *http.Client
	Creds      *CredentialCache
}

type easyParcelRateResponse struct {
	Result []struct {
		Rates []struct {
			ServiceName   string `json:"service_name"`
			CourierName   string `json:"courier_name"`
			Price         string `json:"price"`
			DeliveryHours string `json:"delivery"`
		} `json:"rates"`
	} `json:"result"`
}

type easyParcelTrackResponse struct {
	Result []struct {
		Latest string `json:"latest"`
		Events []struct {
			Status      string `json:"status"`
			Description string `json:"event"`
			Location    string `json:"location"`
			Timestamp   int64  `json:"timestamp"`
		} `json:"tracking_events"`
	} `json:"result"`
}

// Rates quotes available services for a parcel.
func (c *EasyParcel) Rates(ctx context.Context, r RateReq) ([]Rate, error) {
	var resp easyParcelRateResponse
	if err := c.call(ctx, "EPRateCheckingBulk", url.Values{
		"pick_code": {r.PickupPostcode},
		"send_code": {r.DeliverPostcode},
		"weight":    {fmt.Sprintf("%.2f", r.WeightKg)},
		"courier":   {r.Courier},
	}, &resp); err != nil {
		return nil, err
	}
	var rates []Rate
	for _, result := range resp.Result {
		for _, rate := range result.Rates {
			priceSen, err := ringgitStringToSen(rate.Price)
			if err != nil {
				continue
			}
			rates = append(rates, Rate{
				Service: rate.ServiceName,
				Courier: rate.CourierName,
				Price:   priceSen,
				ETD:     rate.DeliveryHours,
			})
		}
	}
	return rates, nil
}

// Track fetches tracking events for a shipment.
func (c *EasyParcel) Track(ctx context.Context, req TrackReq) ([]TrackEvent, error) {
	var resp easyParcelTrackResponse
	if err := c.call(ctx, "EPTrackingBulk", url.Values{
		"awb":     {req.TrackingNumber},
		"courier": {req.Courier},
	}, &resp); err != nil {
		return nil, err
	}
	var events []TrackEvent
	for _, result := range resp.Result {
		for _, ev := range result.Events {
			events = append(events, TrackEvent{
				Status:      ev.Status,
				Description: ev.Description,
				Location:    ev.Location,
				OccurredAt:  ev.Timestamp,
			})
		}
	}
	return events, nil
}

func (c *EasyParcel) call(ctx context.Context, action string, form url.Values, dst any) error {
	apiKey, err := c.Creds.APIKey(ctx)
	if err != nil {
		return fmt.Errorf("easyparcel credentials: %w", err)
	}
	form.Set("api", apiKey)

	base := strings.TrimRight(c.BaseURL, "/")
	endpoint := fmt.Sprintf("%s/?ac=%s", base, action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("easyparcel %s: %w", action, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("easyparcel %s: unexpected status %d", action, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

// ringgitStringToSen parses an API price like "7.90" into sen.
func ringgitStringToSen(price string) (int64, error) {
	trimmed := strings.TrimSpace(price)
	if trimmed == "" {
		return 0, fmt.Errorf("empty price")
	}
	parts := strings.SplitN(trimmed, ".", 2)
	var whole, frac int64
	if _, err := fmt.Sscanf(parts[0], "%d", &whole); err != nil {
		return 0, err
	}
	if len(parts) == 2 {
		cent := parts[1]
		if len(cent) > 2 {
			cent = cent[:2]
		}
		for len(cent) < 2 {
			cent += "0"
		}
		if _, err := fmt.Sscanf(cent, "%d", &frac); err != nil {
			return 0, err
		}
	}
	return whole*100 + frac, nil
}

// MockClient returns static rates and is useful for testing and development.
type MockClient struct{}

// Rates returns canned Malaysian courier rates regardless of the request payload.
func (MockClient) Rates(ctx context.Context, r RateReq) ([]Rate, error) {
	_ = ctx
	return []Rate{
		{Service: "Pos Laju Standard", Price: 790, ETD: "2-3 hari", Courier: "poslaju"},
		{Service: "J&T Express", Price: 650, ETD: "1-2 hari", Courier: "jnt"},
	}, nil
}

// TrackMock implements Provider with deterministic events for testing and demo.
type TrackMock struct{}

// Track returns a static list of events describing a shipped parcel.
func (TrackMock) Track(ctx context.Context, req TrackReq) ([]TrackEvent, error) {
	return []TrackEvent{{
		Status:      "SHIPPED",
		Description: "Bungkusan diterima oleh kurier",
		Location:    "Shah Alam",
		OccurredAt:  0,
	}}, nil
}
