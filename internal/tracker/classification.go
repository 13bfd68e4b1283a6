package tracker

// Classification is the handling label on a transmission record.
type Classification string

const (
	ClassificationPublic          Classification = "PUBLIC"
	ClassificationSensitive       Classification = "SENSITIVE"
	ClassificationConfidential    Classification = "CONFIDENTIAL"
	ClassificationTribalSovereign Classification = "TRIBAL_SOVEREIGN"
)

func (c Classification) IsValid() bool {
	switch c {
	case ClassificationPublic, ClassificationSensitive, ClassificationConfidential, ClassificationTribalSovereign:
		return true
	default:
		return false
	}
}

func (c Classification) String() string {
	return string(c)
}

// AllClassifications returns the valid labels ordered from least to
// most restricted.
func AllClassifications() []Classification {
	return []Classification{ClassificationPublic, ClassificationSensitive, ClassificationConfidential, ClassificationTribalSovereign}
}
