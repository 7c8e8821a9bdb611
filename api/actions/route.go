package actions

import (
	"errors"
	"strings"

	"hallin-site/utils"
	harukiAPIHelper "hallin-site/utils/api"
	"hallin-site/utils/cloudflare"
	mongoManager "hallin-site/utils/database/mongo"
	"hallin-site/utils/mailer"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

const (
	msgTooManySubmissions = "Too many submissions. Try again later."
	msgSendFailed         = "Failed to send. Try again later."
	msgVerificationPrefix = "Verification failed: "
)

var forms = map[utils.ActionName]func() submission{
	utils.ActionSendContactMessage:    func() submission { return &contactForm{} },
	utils.ActionSubscribeToNewsletter: func() submission { return &newsletterForm{} },
	utils.ActionSendLicensingRequest:  func() submission { return &licensingForm{} },
	utils.ActionSendProjectInquiry:    func() submission { return &projectInquiryForm{} },
}

func RegisterActionRoutes(apiHelper *harukiAPIHelper.HallinRouterHelpers) {
	apiHelper.Router.Post("/_actions/:name", handleAction(apiHelper))
}

func handleAction(apiHelper *harukiAPIHelper.HallinRouterHelpers) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, err := utils.ParseActionName(c.Params("name"))
		if err != nil {
			return harukiAPIHelper.ActionErrorResponse(c, utils.ActionErrorNotFound, err.Error())
		}
		form := forms[name]()
		if err := c.BodyParser(form); err != nil {
			return harukiAPIHelper.ActionErrorResponse(c, utils.ActionErrorBadRequest, "invalid form payload")
		}
		if issues := form.validate(); len(issues) > 0 {
			encoded, err := sonic.MarshalString(issues)
			if err != nil {
				return harukiAPIHelper.ActionErrorResponse(c, utils.ActionErrorBadRequest, issues[0].Message)
			}
			return harukiAPIHelper.ActionErrorResponse(c, utils.ActionErrorBadRequest, utils.ValidationPrefix+encoded)
		}

		ctx := c.UserContext()
		cfg := apiHelper.Config.Forms
		clientIP := cloudflare.ClientIP(c)

		// Forwarding headers are client controlled; the limiter keys on the
		// peer address unless a trusted proxy header is configured.
		if apiHelper.Guard != nil && cfg.SubmitLimit > 0 {
			allowed, err := apiHelper.Guard.AllowSubmit(ctx, string(name), c.IP(), cfg.SubmitLimit, cfg.SubmitWindow)
			if err != nil {
				apiHelper.Logger.Warnf("submit limiter unavailable for %s: %v", name, err)
			} else if !allowed {
				return harukiAPIHelper.ActionErrorResponse(c, utils.ActionErrorTooManyRequests, msgTooManySubmissions)
			}
		}

		vresp := apiHelper.Verifier.ValidateTurnstile(ctx, form.token(), clientIP)
		if vresp == nil || !vresp.Success {
			codes := []string{cloudflare.ErrorCodeVerificationFailed}
			if vresp != nil && len(vresp.ErrorCodes) > 0 {
				codes = vresp.ErrorCodes
			}
			return harukiAPIHelper.ActionErrorResponse(c, utils.ActionErrorBadRequest, msgVerificationPrefix+strings.Join(codes, ", "))
		}

		if apiHelper.Guard != nil {
			claimed, err := apiHelper.Guard.ClaimToken(ctx, form.token(), cfg.TokenTTL)
			if err != nil {
				apiHelper.Logger.Warnf("token guard unavailable for %s: %v", name, err)
			} else if !claimed {
				return harukiAPIHelper.ActionErrorResponse(c, utils.ActionErrorBadRequest, msgVerificationPrefix+cloudflare.ErrorCodeTimeoutOrDuplicate)
			}
		}

		if err := form.perform(ctx, apiHelper); err != nil {
			var providerErr *mailer.ProviderError
			if errors.As(err, &providerErr) && providerErr.Message != "" {
				apiHelper.Logger.Warnf("%s rejected by provider: %v", name, err)
				return harukiAPIHelper.ActionErrorResponse(c, utils.ActionErrorBadRequest, providerErr.Message)
			}
			apiHelper.Logger.Errorf("%s failed: %v", name, err)
			return harukiAPIHelper.ActionErrorResponse(c, utils.ActionErrorInternal, msgSendFailed)
		}

		if apiHelper.Archive != nil {
			if err := apiHelper.Archive.ArchiveSubmission(ctx, mongoManager.NewSubmission(string(name), clientIP, form.fields())); err != nil {
				apiHelper.Logger.Warnf("failed to archive %s submission: %v", name, err)
			}
		}
		apiHelper.Logger.Infof("%s accepted from %s", name, clientIP)
		return harukiAPIHelper.ActionDataResponse(c, fiber.Map{"success": true})
	}
}
