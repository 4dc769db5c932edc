package engine

import "github.com/eduxlabs/llnd-engine/internal/domain"

// narrativeKey collapses exceeds onto meets: the narrative tables carry
// three tiers, and an exceeding learner gets the meets-expected text.
func narrativeKey(o domain.Outcome) domain.Outcome {
	if o == domain.OutcomeExceeds {
		return domain.OutcomeMeets
	}
	return o
}

// justificationTemplates holds the per-domain, per-outcome report
// narratives.
var justificationTemplates = map[domain.SkillDomain]map[domain.Outcome]string{
	domain.DomainReading: {
		domain.OutcomeMeets:           "The learner demonstrates solid reading comprehension skills at the expected level for AQF 3 qualifications. They can interpret workplace documents, follow multi-step procedures, and identify key information from various text types.",
		domain.OutcomeMonitor:         "The learner shows developing reading skills but may benefit from additional scaffolding when engaging with complex workplace texts. Early monitoring during initial training modules is recommended.",
		domain.OutcomeSupportRequired: "Gap identified in Reading. The learner requires targeted literacy intervention to build foundational comprehension skills before engaging with complex training materials. OS25-aligned support is recommended.",
	},
	domain.DomainWriting: {
		domain.OutcomeMeets:           "The learner demonstrates functional writing skills appropriate for AQF 3 requirements. They can produce clear explanations, confirmations, and requests relevant to workplace contexts.",
		domain.OutcomeMonitor:         "The learner shows emerging writing skills but may need support with structuring longer responses or expressing cause-and-effect relationships clearly.",
		domain.OutcomeSupportRequired: "Gap identified in Writing. The learner requires targeted literacy support to develop workplace writing skills. Consider providing templates and guided practice activities.",
	},
	domain.DomainNumeracy: {
		domain.OutcomeMeets:           "The learner demonstrates competent numeracy skills at the expected level. They can perform calculations, interpret data, and apply mathematical reasoning to workplace scenarios.",
		domain.OutcomeMonitor:         "The learner shows functional numeracy skills but may benefit from additional practice with multi-step calculations or percentage-based problems.",
		domain.OutcomeSupportRequired: "Gap identified in Numeracy. The learner requires targeted numeracy intervention, particularly in time calculations, percentages, or data interpretation. OS25-aligned support is recommended.",
	},
	domain.DomainOral: {
		domain.OutcomeMeets:           "The learner demonstrates effective oral communication comprehension skills. They can follow spoken instructions, identify key messages, and determine appropriate responses in workplace scenarios.",
		domain.OutcomeMonitor:         "The learner shows adequate oral communication skills but may benefit from practice with clarification techniques and prioritisation in dynamic situations.",
		domain.OutcomeSupportRequired: "Gap identified in Oral Communication. The learner may need support with understanding spoken instructions and formulating appropriate responses. Consider paired practice activities.",
	},
	domain.DomainDigital: {
		domain.OutcomeMeets:           "The learner demonstrates competent digital literacy skills. They understand basic digital workflows, file management, and digital safety practices required in modern workplaces.",
		domain.OutcomeMonitor:         "The learner shows developing digital skills but may benefit from additional orientation to workplace digital systems and security practices.",
		domain.OutcomeSupportRequired: "Gap identified in Digital Literacy. The learner requires foundational digital skills training before engaging with workplace technology systems.",
	},
}

// supportStrategies holds the per-domain, per-outcome support actions
// recommended in reports.
var supportStrategies = map[domain.SkillDomain]map[domain.Outcome][]string{
	domain.DomainReading: {
		domain.OutcomeMeets:           {"Continue with standard training delivery", "Provide extension reading materials if interested"},
		domain.OutcomeMonitor:         {"Pre-teach key vocabulary before each unit", "Provide reading guides and glossaries", "Check comprehension regularly during training"},
		domain.OutcomeSupportRequired: {"Implement 1:1 or small group literacy support", "Use simplified texts initially with gradual complexity increase", "Provide visual aids and graphic organisers", "Schedule regular progress reviews"},
	},
	domain.DomainWriting: {
		domain.OutcomeMeets:           {"Continue with standard assessment tasks", "Encourage reflective writing practice"},
		domain.OutcomeMonitor:         {"Provide writing templates and scaffolds", "Offer formative feedback on drafts", "Use sentence starters for complex responses"},
		domain.OutcomeSupportRequired: {"Implement structured writing support program", "Provide extensive modelling and templates", "Consider alternative demonstration methods initially", "Build writing skills progressively"},
	},
	domain.DomainNumeracy: {
		domain.OutcomeMeets:           {"Continue with standard numeracy requirements", "Provide calculator access as standard"},
		domain.OutcomeMonitor:         {"Pre-teach mathematical concepts before application", "Provide step-by-step worked examples", "Allow additional time for numeracy-based tasks"},
		domain.OutcomeSupportRequired: {"Implement targeted numeracy intervention", "Use concrete materials and visual representations", "Break multi-step problems into smaller components", "Provide extensive practice opportunities"},
	},
	domain.DomainOral: {
		domain.OutcomeMeets:           {"Continue with standard verbal instruction methods", "Include group discussion activities"},
		domain.OutcomeMonitor:         {"Repeat and rephrase key instructions", "Check understanding before proceeding", "Encourage questions and clarification"},
		domain.OutcomeSupportRequired: {"Provide written backup for all verbal instructions", "Use visual aids to support spoken content", "Allow processing time after instructions", "Practice clarification techniques"},
	},
	domain.DomainDigital: {
		domain.OutcomeMeets:           {"Continue with standard digital tool requirements", "Introduce advanced features progressively"},
		domain.OutcomeMonitor:         {"Provide step-by-step digital guides", "Offer additional practice time with systems", "Pair with confident digital user initially"},
		domain.OutcomeSupportRequired: {"Implement basic digital skills orientation", "Provide extensive hands-on practice", "Use simplified interfaces where possible", "Consider alternative submission methods initially"},
	},
}

// Justification returns the narrative text for a domain outcome, or an
// empty string when no template exists.
func Justification(d domain.SkillDomain, outcome domain.Outcome) string {
	return justificationTemplates[d][narrativeKey(outcome)]
}

// Strategies returns the recommended support actions for a domain
// outcome. The returned slice is shared; callers must not mutate it.
func Strategies(d domain.SkillDomain, outcome domain.Outcome) []string {
	return supportStrategies[d][narrativeKey(outcome)]
}
