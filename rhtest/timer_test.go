package rhtest_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tr-rocks/litex/cmdargs"
	"github.com/tr-rocks/litex/csr"
	"github.com/tr-rocks/litex/rhtest"
)

var _ = Describe("MapTimer", func() {
	It("should map timer 0 to the aggregate channel", func() {
		ch, err := rhtest.MapTimer(0)

		Expect(err).NotTo(HaveOccurred())
		Expect(ch).To(Equal(rhtest.AggregateChannel))
	})

	It("should offset timers 1 to K by one", func() {
		for logical := uint32(1); logical <= rhtest.NumTimers; logical++ {
			ch, err := rhtest.MapTimer(logical)

			Expect(err).NotTo(HaveOccurred())
			Expect(ch).To(Equal(logical + 1))
		}
	})

	It("should reject timers above K", func() {
		_, err := rhtest.MapTimer(rhtest.NumTimers + 1)

		var verr *cmdargs.ValidationError
		Expect(errors.As(err, &verr)).To(BeTrue())
		Expect(verr.Field).To(Equal("timer_id"))
		Expect(verr.Error()).To(ContainSubstring("[0, 5]"))
	})
})

var _ = Describe("SetTimer", func() {
	var bank *csr.SimBank

	BeforeEach(func() {
		bank = csr.MakeBuilder().Build("Bank")
	})

	It("should set the aggregate channel by default", func() {
		r, err := rhtest.SetTimer(bank, 0, 100)

		Expect(err).NotTo(HaveOccurred())
		Expect(r.Physical).To(Equal(uint32(1)))
		Expect(r.Cycles).To(Equal(uint32(100)))

		v, _ := csr.ReadTimer(bank, 1)
		Expect(v).To(Equal(uint32(100)))
	})

	It("should set timer 2 on physical channel 3", func() {
		r, err := rhtest.SetTimer(bank, 2, 100)

		Expect(err).NotTo(HaveOccurred())
		Expect(r.Physical).To(Equal(uint32(3)))

		v, _ := csr.ReadTimer(bank, 3)
		Expect(v).To(Equal(uint32(100)))
		Expect(r.String()).To(ContainSubstring("states 3-4"))
	})

	It("should not touch hardware for an invalid timer", func() {
		writes := 0
		bank.AcceptHook(hookCounter(&writes))

		_, err := rhtest.SetTimer(bank, 9, 100)

		Expect(err).To(HaveOccurred())
		Expect(writes).To(BeZero())
	})
})
