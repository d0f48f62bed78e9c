package guardrail

import (
	"fmt"
	"strings"

	"pos-intelligence-be/internal/pkg/logger"
)

type RejectionCode string

const (
	CodeEmptyInput       RejectionCode = "EMPTY_INPUT"
	CodeTooLong          RejectionCode = "TOO_LONG"
	CodeForbiddenKeyword RejectionCode = "FORBIDDEN_KEYWORD"
)

// forbiddenKeywords are data-modification verbs rejected when they appear as
// standalone uppercase-matched words. Substring hits inside normal words
// ("created", "dropdown") pass.
var forbiddenKeywords = []string{"DROP", "DELETE", "UPDATE", "INSERT", "TRUNCATE", "ALTER", "CREATE"}

// Result is the guardrail verdict. When Allowed is false, Message is the
// user-facing refusal and Code identifies the rule that fired.
type Result struct {
	Allowed bool
	Code    RejectionCode
	Message string
}

// Validator is the first pipeline stage. Rules run in fixed order: empty
// check, token-length check, forbidden-keyword check.
type Validator struct {
	maxTokens int
	audit     logger.ILogger
}

func NewValidator(maxTokens int, audit logger.ILogger) *Validator {
	return &Validator{maxTokens: maxTokens, audit: audit}
}

func (v *Validator) Validate(question string) Result {
	clean := strings.TrimSpace(question)
	if clean == "" {
		return Result{
			Code:    CodeEmptyInput,
			Message: "Query rejected: The input is empty or too short to process.",
		}
	}

	tokenCount := len(Tokenize(clean))
	if tokenCount > v.maxTokens {
		v.audit.Warn("guardrail", "query length limit triggered", map[string]interface{}{
			"token_count": tokenCount,
			"max_tokens":  v.maxTokens,
		})
		return Result{
			Code:    CodeTooLong,
			Message: fmt.Sprintf("Your question is too long (%d tokens). Please keep it under %d tokens.", tokenCount, v.maxTokens),
		}
	}

	for _, word := range strings.Fields(strings.ToUpper(clean)) {
		for _, forbidden := range forbiddenKeywords {
			if word == forbidden {
				v.audit.Warn("guardrail", "prohibited keyword detected", map[string]interface{}{
					"keyword": forbidden,
				})
				return Result{
					Code:    CodeForbiddenKeyword,
					Message: "Security rejection: You are not authorized to perform data modification commands.",
				}
			}
		}
	}

	return Result{Allowed: true}
}
