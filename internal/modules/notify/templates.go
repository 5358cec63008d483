package notify

// Mail template ids. Ids are stored on notification rows, so they never change.
const (
	TemplateDeliverableSla = "mail/deliverable-sla.html"
	TemplateClientSla      = "mail/client-sla.html"
	TemplateNewOrder       = "mail/new-order.html"
	TemplateResetPassword  = "mail/reset-password.html"
)

const (
	ImageLogo         = "logo.png"
	ImagePasswordLock = "password-lock.png"
	ImageSlaBadge     = "sla-badge.png"
)

// staticImages maps a template to the inline images read from the file store.
// Templates not listed get defaultImages.
var staticImages = map[string][]string{
	TemplateResetPassword: {ImageLogo, ImagePasswordLock},
}

var defaultImages = []string{ImageLogo}

// badgeTemplates additionally embed a rendered SLA badge.
var badgeTemplates = map[string]bool{
	TemplateDeliverableSla: true,
	TemplateClientSla:      true,
}

func imagesFor(template string) []string {
	if imgs, ok := staticImages[template]; ok {
		return imgs
	}
	return defaultImages
}
