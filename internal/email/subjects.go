package email

const (
	subjectNewLeadFmt    = "New lead: %s (score %d)"
	subjectUrgentLeadFmt = "🔥 Hot lead: %s (score %d)"
	subjectWelcomeFmt    = "Thank you for your home valuation request, %s!"
)
