package rhtest_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tr-rocks/litex/cmdargs"
	"github.com/tr-rocks/litex/csr"
	"github.com/tr-rocks/litex/rhtest"
)

var _ = Describe("Replicate", func() {
	It("should repeat the value across the data width", func() {
		Expect(rhtest.Replicate(0xdeadbeef, 128)).
			To(Equal("0xdeadbeefdeadbeefdeadbeefdeadbeef"))
		Expect(rhtest.Replicate(0x1, 64)).To(Equal("0x0000000100000001"))
	})

	It("should keep the low bits of narrow data paths", func() {
		Expect(rhtest.Replicate(0xdeadbeef, 16)).To(Equal("0xbeef"))
		Expect(rhtest.Replicate(0xdeadbeef, 30)).To(Equal("0x1eadbeef"))
	})
})

var _ = Describe("PatternEncoder", func() {
	var (
		bank    *csr.SimBank
		encoder *rhtest.PatternEncoder
	)

	BeforeEach(func() {
		bank = csr.MakeBuilder().WithDataWidth(64).Build("Bank")
		encoder = rhtest.NewPatternEncoder(bank)
	})

	It("should write the uniform pattern and read it back", func() {
		report, err := encoder.Set(0xaaaa5555, 0)

		Expect(err).NotTo(HaveOccurred())
		Expect(report.Width).To(Equal(uint32(64)))
		Expect(report.Even).To(Equal(uint32(0xaaaa5555)))
		Expect(report.DoublePattern).To(BeFalse())
		Expect(report.String()).To(ContainSubstring("0xaaaa5555aaaa5555"))
	})

	It("should show both row parities in two-pattern mode", func() {
		Expect(csr.WriteBool(bank, csr.DoublePattern, true)).To(Succeed())

		_, err := encoder.Set(0x11111111, 0)
		Expect(err).NotTo(HaveOccurred())
		report, err := encoder.Set(0x22222222, 1)
		Expect(err).NotTo(HaveOccurred())

		Expect(report.Even).To(Equal(uint32(0x11111111)))
		Expect(report.Odd).To(Equal(uint32(0x22222222)))
		Expect(report.String()).To(ContainSubstring("Odd rows:  0x2222222222222222"))
	})

	It("should reject parity selectors other than 0 and 1", func() {
		writes := 0
		bank.AcceptHook(hookCounter(&writes))

		_, err := encoder.Set(0x1, 2)

		var verr *cmdargs.ValidationError
		Expect(errors.As(err, &verr)).To(BeTrue())
		Expect(verr.Field).To(Equal("parity_selector"))
		Expect(writes).To(BeZero())
	})

	It("should report what hardware holds, not what was written", func() {
		bank.InjectFault(csr.PatternOdd, errors.New("stuck"))

		_, err := encoder.Set(0x1, 0)

		var hwErr *csr.HardwareError
		Expect(errors.As(err, &hwErr)).To(BeTrue())
		Expect(hwErr.Addr).To(Equal(csr.PatternOdd))
	})

	It("should fail on a zero data width", func() {
		bank = csr.MakeBuilder().WithDataWidth(0).Build("Bank")
		encoder = rhtest.NewPatternEncoder(bank)

		_, err := encoder.Set(0x1, 0)

		Expect(errors.Is(err, rhtest.ErrZeroDataWidth)).To(BeTrue())
	})
})
