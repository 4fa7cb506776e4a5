package payout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// PayPalProvider executes payouts via the PayPal Payouts API.
type PayPalProvider struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	client       *http.Client
}

func NewPayPalProvider(baseURL, clientID, clientSecret string) *PayPalProvider {
	if baseURL == "" {
		baseURL = "https://api-m.sandbox.paypal.com"
	}
	return &PayPalProvider{
		BaseURL:      baseURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
}

type paypalTokenResp struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// getToken fetches a fresh client-credentials token per disbursement.
func (p *PayPalProvider) getToken(ctx context.Context) (string, error) {
	body := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/v1/oauth2/token", body)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(p.ClientID, p.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal token: status %d", resp.StatusCode)
	}
	var out paypalTokenResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

type paypalPayoutReq struct {
	SenderBatchHeader struct {
		SenderBatchID string `json:"sender_batch_id"`
		EmailSubject  string `json:"email_subject"`
	} `json:"sender_batch_header"`
	Items []paypalPayoutItem `json:"items"`
}

type paypalPayoutItem struct {
	RecipientType string `json:"recipient_type"`
	Amount        struct {
		Value    string `json:"value"`
		Currency string `json:"currency"`
	} `json:"amount"`
	Receiver     string `json:"receiver"`
	Note         string `json:"note"`
	SenderItemID string `json:"sender_item_id"`
}

type paypalPayoutResp struct {
	BatchHeader struct {
		PayoutBatchID string `json:"payout_batch_id"`
		BatchStatus   string `json:"batch_status"`
	} `json:"batch_header"`
}

func (p *PayPalProvider) Disburse(ctx context.Context, req DisbursementRequest) (*DisbursementResponse, error) {
	token, err := p.getToken(ctx)
	if err != nil {
		return nil, err
	}
	var payload paypalPayoutReq
	payload.SenderBatchHeader.SenderBatchID = req.Reference
	payload.SenderBatchHeader.EmailSubject = "Your Roamio affiliate payout"
	item := paypalPayoutItem{
		RecipientType: "EMAIL",
		Receiver:      req.Account,
		Note:          req.Description,
		SenderItemID:  req.Reference,
	}
	item.Amount.Value = fmt.Sprintf("%d.%02d", req.AmountCents/100, req.AmountCents%100)
	item.Amount.Currency = req.Currency
	payload.Items = []paypalPayoutItem{item}

	body, _ := json.Marshal(payload)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/v1/payments/payouts", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("paypal payout: status %d", resp.StatusCode)
	}
	var out paypalPayoutResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &DisbursementResponse{
		TransactionID: out.BatchHeader.PayoutBatchID,
		Status:        out.BatchHeader.BatchStatus,
	}, nil
}
