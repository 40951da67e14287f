package conversation

// User-facing texts. The deployment is Persian; the set is fixed.
const (
	msgWelcome     = "سلام\n/add_experience\n/view_experiences\n/cancel"
	msgCancelled   = "لغو شد"
	msgNoActive    = "عملیاتی نیست"
	msgCancelFirst = "ابتدا عملیات جاری را با /cancel لغو کنید"
	msgSaved       = "ثبت شد"
	msgNoStats     = "هیچ تجربه‌ای نیست"
	msgNotFound    = "نیست"
	msgApology     = "خطایی پیش آمد؛ لطفاً دوباره تلاش کنید"
	msgPickClinic  = "یکی از کلینیک‌ها را انتخاب کنید یا /cancel"

	promptClinicName = "نام کلینیک؟"
	promptProvince   = "استان؟"
	promptCity       = "شهر؟"
	promptStartDate  = "تاریخ شروع (YYYY-MM-DD)"
	promptEndDate    = "تاریخ پایان یا «نامشخص»"
	promptPayment    = "وضعیت پرداخت؟"
	promptContract   = "قرارداد کتبی؟"
	promptCulture    = "فرهنگ بیماران؟"
	promptCount      = "تعداد بیماران؟"
	promptInsurance  = "وضعیت بیمه‌ها؟"
	promptEnv        = "محیط کاری؟"
	promptRating     = "امتیاز 1 تا 5"
	promptComment    = "توضیحات یا «رد شدن»"

	errBadProvince = "استان نامعتبر"
	errBadDate     = "فرمت غلط"
	errBadContract = "بله/خیر"
	errBadRating   = "عدد 1 تا 5"
)

var ratingOptions = []string{"1", "2", "3", "4", "5"}

// invalidInput carries the error note re-emitted with the prompt when a
// state's validation rejects the input. The draft is left untouched.
type invalidInput struct {
	note string
}

func (e *invalidInput) Error() string {
	return e.note
}

// step is one row of the state-machine table: the prompt emitted on entering
// the state, the validate-and-assign handler for input received in it, and
// the state that follows on success.
type step struct {
	prompt func(d *Dispatcher) Reply
	handle func(d *Dispatcher, s *Session, text string) error
	next   State
}

// buildSteps assembles the fixed transition table. Free-text states have no
// validation rule; closed-set states reject anything outside their list.
func buildSteps() map[State]step {
	return map[State]step{
		StateClinicName: {
			prompt: func(*Dispatcher) Reply { return textReply(promptClinicName) },
			handle: func(_ *Dispatcher, s *Session, text string) error {
				s.Draft.ClinicName = text
				return nil
			},
			next: StateProvince,
		},
		StateProvince: {
			prompt: func(d *Dispatcher) Reply { return keyboardReply(promptProvince, d.opts.Provinces, 3) },
			handle: func(d *Dispatcher, s *Session, text string) error {
				if !d.opts.IsProvince(text) {
					return &invalidInput{note: errBadProvince}
				}
				s.Draft.Province = text
				return nil
			},
			next: StateCity,
		},
		StateCity: {
			prompt: func(*Dispatcher) Reply { return removeKeyboardReply(promptCity) },
			handle: func(_ *Dispatcher, s *Session, text string) error {
				s.Draft.City = text
				return nil
			},
			next: StateStartDate,
		},
		StateStartDate: {
			prompt: func(*Dispatcher) Reply { return textReply(promptStartDate) },
			handle: func(_ *Dispatcher, s *Session, text string) error {
				if !validDate(text) {
					return &invalidInput{note: errBadDate}
				}
				s.Draft.StartDate = text
				return nil
			},
			next: StateEndDate,
		},
		StateEndDate: {
			prompt: func(*Dispatcher) Reply { return textReply(promptEndDate) },
			handle: func(d *Dispatcher, s *Session, text string) error {
				if d.opts.IsUnknownDate(text) {
					s.Draft.EndDate = nil
					return nil
				}
				if !validDate(text) {
					return &invalidInput{note: errBadDate}
				}
				end := text
				s.Draft.EndDate = &end
				return nil
			},
			next: StatePayment,
		},
		StatePayment: {
			prompt: func(*Dispatcher) Reply { return textReply(promptPayment) },
			handle: func(_ *Dispatcher, s *Session, text string) error {
				s.Draft.Payment = text
				return nil
			},
			next: StateContract,
		},
		StateContract: {
			prompt: func(d *Dispatcher) Reply { return keyboardReply(promptContract, d.opts.ContractOptions, 2) },
			handle: func(d *Dispatcher, s *Session, text string) error {
				if !d.opts.IsContractOption(text) {
					return &invalidInput{note: errBadContract}
				}
				s.Draft.ContractSigned = text == d.opts.ContractYes()
				return nil
			},
			next: StatePatientCulture,
		},
		StatePatientCulture: {
			prompt: func(*Dispatcher) Reply { return removeKeyboardReply(promptCulture) },
			handle: func(_ *Dispatcher, s *Session, text string) error {
				s.Draft.PatientCulture = text
				return nil
			},
			next: StatePatientCount,
		},
		StatePatientCount: {
			prompt: func(*Dispatcher) Reply { return textReply(promptCount) },
			handle: func(_ *Dispatcher, s *Session, text string) error {
				s.Draft.PatientCount = text
				return nil
			},
			next: StateInsuranceStatus,
		},
		StateInsuranceStatus: {
			prompt: func(*Dispatcher) Reply { return textReply(promptInsurance) },
			handle: func(_ *Dispatcher, s *Session, text string) error {
				s.Draft.InsuranceStatus = text
				return nil
			},
			next: StateEnvironment,
		},
		StateEnvironment: {
			prompt: func(*Dispatcher) Reply { return textReply(promptEnv) },
			handle: func(_ *Dispatcher, s *Session, text string) error {
				s.Draft.Environment = text
				return nil
			},
			next: StateRating,
		},
		StateRating: {
			prompt: func(*Dispatcher) Reply { return keyboardReply(promptRating, ratingOptions, 5) },
			handle: func(_ *Dispatcher, s *Session, text string) error {
				r, ok := parseRating(text)
				if !ok {
					return &invalidInput{note: errBadRating}
				}
				s.Draft.Rating = r
				return nil
			},
			next: StateComment,
		},
		StateComment: {
			prompt: func(d *Dispatcher) Reply { return keyboardReply(promptComment, []string{d.opts.SkipToken}, 1) },
			handle: func(d *Dispatcher, s *Session, text string) error {
				if text == d.opts.SkipToken {
					s.Draft.Comment = ""
				} else {
					s.Draft.Comment = text
				}
				return nil
			},
			next: stateCommit,
		},
	}
}
