package cloudflare

const (
	ErrorCodeMissingInputResponse = "missing-input-response"
	ErrorCodeInternalError        = "internal-error"
	ErrorCodeTimeoutOrDuplicate   = "timeout-or-duplicate"
	ErrorCodeVerificationFailed   = "verification-failed"
)

type TurnstileResponse struct {
	Success     bool     `json:"success"`
	ChallengeTS string   `json:"challenge_ts,omitempty"`
	Hostname    string   `json:"hostname,omitempty"`
	ErrorCodes  []string `json:"error-codes,omitempty"`
	Action      string   `json:"action,omitempty"`
	Cdata       string   `json:"cdata,omitempty"`
}

func failed(codes ...string) *TurnstileResponse {
	return &TurnstileResponse{Success: false, ErrorCodes: codes}
}
