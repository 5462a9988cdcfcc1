package constants

import "strings"

// DeliveryMethod is how the course was delivered, as printed on certificates.
type DeliveryMethod string

const (
	DeliveryQASSelfStudy  DeliveryMethod = "QAS Self-Study"
	DeliverySelfStudy     DeliveryMethod = "Self-Study"
	DeliveryOnline        DeliveryMethod = "Online"
	DeliveryWebinar       DeliveryMethod = "Webinar"
	DeliveryGroupLive     DeliveryMethod = "Group Live"
	DeliveryGroupInternet DeliveryMethod = "Group Internet"
	DeliveryNanoLearning  DeliveryMethod = "Nano Learning"
	DeliveryCorrespond    DeliveryMethod = "Correspondence"
)

// CourseType is the delivery classification on the CE Broker form.
type CourseType string

const (
	CourseTypeLive          CourseType = "Live (Involves live interaction with presenter/host)"
	CourseTypeComputerBased CourseType = "Computer-Based Training (ie: online courses)"
	CourseTypeCorrespond    CourseType = "Correspondence"
	CourseTypePrerecorded   CourseType = "Prerecorded Broadcast"
)

var courseTypeByDelivery = map[DeliveryMethod]CourseType{
	DeliveryQASSelfStudy:  CourseTypeComputerBased,
	DeliverySelfStudy:     CourseTypeComputerBased,
	DeliveryOnline:        CourseTypeComputerBased,
	DeliveryNanoLearning:  CourseTypeComputerBased,
	DeliveryWebinar:       CourseTypeLive,
	DeliveryGroupLive:     CourseTypeLive,
	DeliveryGroupInternet: CourseTypeLive,
	DeliveryCorrespond:    CourseTypeCorrespond,
}

// CourseTypeFor maps a delivery method to the broker's course type.
// Self-study is the dominant format for these certificates, so anything
// unrecognized reports as computer-based training.
func CourseTypeFor(d DeliveryMethod) CourseType {
	if t, ok := courseTypeByDelivery[d]; ok {
		return t
	}
	return CourseTypeComputerBased
}

// ParseDeliveryMethod matches free certificate text to a known delivery
// method. Returns false when nothing matches.
func ParseDeliveryMethod(input string) (DeliveryMethod, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}
	for d := range courseTypeByDelivery {
		if normalized == strings.ToLower(string(d)) {
			return d, true
		}
	}
	// common shorthand seen on scanned certificates
	switch {
	case strings.Contains(normalized, "self-study"), strings.Contains(normalized, "self study"):
		return DeliveryQASSelfStudy, true
	case strings.Contains(normalized, "webinar"):
		return DeliveryWebinar, true
	case strings.Contains(normalized, "live"):
		return DeliveryGroupLive, true
	}
	return "", false
}
