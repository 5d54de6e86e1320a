package generation

import (
	"errors"
	"strings"

	"google.golang.org/genai"
)

// Retryable upstream statuses. Only transient server errors retry; 500 is
// reported as transient to callers but not retried, matching upstream
// guidance.
var retryableStatusCodes = map[int]bool{
	502: true,
	503: true,
	504: true,
}

// ErrorInfo is a classified generation failure, ready for transport mapping.
type ErrorInfo struct {
	// Status is the HTTP status to report.
	Status int `json:"status"`

	// Error is a short machine-stable label.
	Error string `json:"error"`

	// Message is the caller-facing hint.
	Message string `json:"message"`

	// Details carries the upstream message when available.
	Details string `json:"details,omitempty"`

	// RetryAfter is a human hint, set for throttling and outages.
	RetryAfter string `json:"retryAfter,omitempty"`
}

// IsTransient reports whether the error is a retryable upstream failure.
func IsTransient(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatusCodes[apiErr.Code]
	}
	return false
}

// Classify maps a generation error onto a stable status and hint.
func Classify(err error) *ErrorInfo {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classifyAPIError(apiErr)
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(msg, "API_KEY") || strings.Contains(lower, "authentication"):
		return &ErrorInfo{
			Status:  401,
			Error:   "Authentication failed",
			Message: "Invalid API key. Please check the generator API key configuration.",
		}
	case strings.Contains(lower, "quota") || strings.Contains(lower, "rate limit"):
		return &ErrorInfo{
			Status:     429,
			Error:      "Rate limit exceeded",
			Message:    "Too many requests. Please wait a moment and try again.",
			RetryAfter: "30 seconds",
		}
	case strings.Contains(lower, "timeout") || strings.Contains(msg, "ETIMEDOUT"):
		return &ErrorInfo{
			Status:     504,
			Error:      "Request timeout",
			Message:    "The request took too long to complete. Please try again.",
			RetryAfter: "30 seconds",
		}
	}

	return &ErrorInfo{
		Status:  500,
		Error:   "Internal server error",
		Message: "An unexpected error occurred while generating the document.",
	}
}

func classifyAPIError(apiErr genai.APIError) *ErrorInfo {
	switch apiErr.Code {
	case 400:
		return &ErrorInfo{
			Status:  400,
			Error:   "Invalid request",
			Message: "The request parameters are invalid. Please check your input.",
			Details: apiErr.Message,
		}
	case 401:
		return &ErrorInfo{
			Status:  401,
			Error:   "Authentication failed",
			Message: "Invalid or missing API key. Please check the generator API key configuration.",
			Details: apiErr.Message,
		}
	case 403:
		return &ErrorInfo{
			Status:  403,
			Error:   "Access forbidden",
			Message: "Your API key does not have permission to access this resource.",
			Details: apiErr.Message,
		}
	case 404:
		return &ErrorInfo{
			Status:  404,
			Error:   "Model not found",
			Message: "The requested model was not found. Please check the model name.",
			Details: apiErr.Message,
		}
	case 429:
		return &ErrorInfo{
			Status:     429,
			Error:      "Rate limit exceeded",
			Message:    "Too many requests. Please wait a moment and try again.",
			Details:    apiErr.Message,
			RetryAfter: "30 seconds",
		}
	case 500, 502, 503, 504:
		return &ErrorInfo{
			Status:     502,
			Error:      "Service temporarily unavailable",
			Message:    "The generation backend is experiencing temporary issues. Please try again in 30 seconds.",
			Details:    apiErr.Message,
			RetryAfter: "30 seconds",
		}
	}

	status := apiErr.Code
	if status == 0 {
		status = 500
	}
	return &ErrorInfo{
		Status:  status,
		Error:   "API error",
		Message: apiErr.Message,
	}
}
