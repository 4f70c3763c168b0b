package enum

// StepEnum is a page of the onboarding funnel, in display order.
type StepEnum string

const (
	STEP_HOME         StepEnum = "home"
	STEP_REGISTRATION StepEnum = "registration"
	STEP_MUNICIPALITY StepEnum = "municipality"
	STEP_RECIPIENT    StepEnum = "recipient"
	STEP_DELIVERY     StepEnum = "delivery"
	STEP_FINALIZE     StepEnum = "finalize"
	STEP_PAYMENT      StepEnum = "payment"
)

// Steps lists the funnel in order.
func Steps() []StepEnum {
	return []StepEnum{
		STEP_HOME,
		STEP_REGISTRATION,
		STEP_MUNICIPALITY,
		STEP_RECIPIENT,
		STEP_DELIVERY,
		STEP_FINALIZE,
		STEP_PAYMENT,
	}
}

func (e StepEnum) ToString() string {
	return string(e)
}

func (e StepEnum) IsValid() bool {
	switch e {
	case STEP_HOME, STEP_REGISTRATION, STEP_MUNICIPALITY, STEP_RECIPIENT,
		STEP_DELIVERY, STEP_FINALIZE, STEP_PAYMENT:
		return true
	}
	return false
}

// Index is the zero-based position in Steps, or -1.
func (e StepEnum) Index() int {
	for i, s := range Steps() {
		if s == e {
			return i
		}
	}
	return -1
}

// Next returns the following step; the last step returns itself.
func (e StepEnum) Next() StepEnum {
	steps := Steps()
	i := e.Index()
	if i < 0 || i == len(steps)-1 {
		return e
	}
	return steps[i+1]
}
