package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GatewaySender posts OTP messages to the SMS gateway collaborator, which
// resolves the registered mobile number from the party id.
type GatewaySender struct {
	Address string
}

func NewGatewaySender(address string) *GatewaySender {
	return &GatewaySender{Address: address}
}

type sendOTPRequest struct {
	PartyID string `json:"party_id"`
	Message string `json:"message"`
}

func (s *GatewaySender) SendOTP(ctx context.Context, partyID, code string) error {
	requestBodyBytes, err := json.Marshal(sendOTPRequest{
		PartyID: partyID,
		Message: fmt.Sprintf("Your delivery confirmation code is %s. Valid for 15 minutes.", code),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/sms/send", s.Address), bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}
	return fmt.Errorf("sms gateway returned status %d", response.StatusCode)
}
