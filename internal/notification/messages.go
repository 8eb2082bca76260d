package notification

import (
	"fmt"

	"realty_leads_backend/internal/leads/domain"
)

func welcomeSMSBody(lead domain.Lead) string {
	return fmt.Sprintf(
		"Hi %s, thanks for requesting a home valuation from Waisons Realty! "+
			"We're preparing your market analysis for %s and will reach out within 24 hours. "+
			"Questions? Call (313) 769-5353. Reply STOP to opt out.",
		lead.FirstName, lead.Address,
	)
}

func followUpSMSBody(lead domain.Lead) string {
	return fmt.Sprintf(
		"Hi %s, just checking in on your valuation request for %s. "+
			"Your market analysis is ready — call us at (313) 769-5353 to walk through it.",
		lead.FirstName, lead.Address,
	)
}
