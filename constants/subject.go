package constants

// BrokerSubject is a subject checkbox on the CE Broker reporting form.
// Values must match the form labels exactly.
type BrokerSubject string

const (
	SubjectPublicAccounting       BrokerSubject = "Public accounting"
	SubjectGovernmentalAccounting BrokerSubject = "Governmental accounting"
	SubjectPublicAuditing         BrokerSubject = "Public auditing"
	SubjectGovernmentalAuditing   BrokerSubject = "Governmental auditing"
	SubjectAdministrative         BrokerSubject = "Administrative practices"
	SubjectSocialEnvironment      BrokerSubject = "Social environment of business"
	SubjectBusinessLaw            BrokerSubject = "Business law"
	SubjectBusinessManagement     BrokerSubject = "Business management and organization"
	SubjectFinance                BrokerSubject = "Finance"
	SubjectManagementAdvisory     BrokerSubject = "Management advisory services"
	SubjectMarketing              BrokerSubject = "Marketing"
	SubjectCommunications         BrokerSubject = "Communications"
	SubjectPersonalDevelopment    BrokerSubject = "Personal development"
	SubjectPersonnelHR            BrokerSubject = "Personnel and human resources"
	SubjectComputerScience        BrokerSubject = "Computer science"
	SubjectEconomics              BrokerSubject = "Economics"
	SubjectMathematics            BrokerSubject = "Mathematics"
	SubjectProduction             BrokerSubject = "Production"
	SubjectSpecializedKnowledge   BrokerSubject = "Specialized knowledge and its application"
	SubjectStatistics             BrokerSubject = "Statistics"
	SubjectTaxes                  BrokerSubject = "Taxes"
)

// BrokerCategory is the top-level CE category chosen in step 1 of the
// reporting workflow.
type BrokerCategory string

const (
	CategoryGeneralCPE         BrokerCategory = "General CPE"
	CategoryProfessionalEthics BrokerCategory = "Professional Ethics CPE"
)

var subjectsByField = map[FieldOfStudy][]BrokerSubject{
	Accounting:     {SubjectPublicAccounting},
	Auditing:       {SubjectPublicAuditing},
	AuditingFraud:  {SubjectPublicAuditing, SubjectAdministrative},
	Taxes:          {SubjectTaxes},
	Economics:      {SubjectEconomics},
	Ethics:         {SubjectAdministrative},
	PersonnelHR:    {SubjectPersonnelHR},
	Communications: {SubjectCommunications, SubjectMarketing},
	General:        {SubjectPublicAccounting},
}

// SubjectsFor maps an internal field of study to the CE Broker subject
// checkboxes it selects. Unknown fields report under public accounting,
// mirroring the broker's own default.
func SubjectsFor(f FieldOfStudy) []BrokerSubject {
	if subjects, ok := subjectsByField[f]; ok {
		out := make([]BrokerSubject, len(subjects))
		copy(out, subjects)
		return out
	}
	return []BrokerSubject{SubjectPublicAccounting}
}
