package litedram_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/tr-rocks/litex/csr"
	"github.com/tr-rocks/litex/litedram"
)

var _ = Describe("WithSoftwareControl", func() {
	var (
		mockCtrl *gomock.Controller
		ctrl     *MockController
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		ctrl = NewMockController(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should wrap the operation in software control", func() {
		on := ctrl.EXPECT().SoftwareControl(true).Return(nil)
		lvl := ctrl.EXPECT().Leveling().Return(nil).After(on)
		ctrl.EXPECT().SoftwareControl(false).Return(nil).After(lvl)

		err := litedram.WithSoftwareControl(ctrl, ctrl.Leveling)

		Expect(err).NotTo(HaveOccurred())
	})

	It("should give control back when the operation fails", func() {
		failure := errors.New("leveling failed")
		ctrl.EXPECT().SoftwareControl(true).Return(nil)
		ctrl.EXPECT().Leveling().Return(failure)
		ctrl.EXPECT().SoftwareControl(false).Return(nil)

		err := litedram.WithSoftwareControl(ctrl, ctrl.Leveling)

		Expect(errors.Is(err, failure)).To(BeTrue())
	})

	It("should not run the operation if software control fails", func() {
		failure := errors.New("dfi busy")
		ctrl.EXPECT().SoftwareControl(true).Return(failure)

		err := litedram.WithSoftwareControl(ctrl, ctrl.Leveling)

		Expect(err).To(MatchError(failure))
	})
})

var _ = Describe("SimController", func() {
	var sim *litedram.SimController

	BeforeEach(func() {
		sim = litedram.NewSimController(2)
	})

	It("should refuse PHY adjustments outside software control", func() {
		err := sim.ForceCmdDelay(3)

		var hwErr *csr.HardwareError
		Expect(errors.As(err, &hwErr)).To(BeTrue())
		Expect(errors.Is(err, litedram.ErrNotUnderSoftwareControl)).To(BeTrue())
	})

	It("should keep delays set under software control", func() {
		err := litedram.WithSoftwareControl(sim, func() error {
			return sim.ForceDatDelay(1, 7)
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(sim.DatDelay(1)).To(Equal(uint32(7)))
		Expect(sim.Calls).To(Equal([]string{
			"software_control true",
			"force_dat_delay 1 7",
			"software_control false",
		}))
	})

	It("should reject modules the PHY does not have", func() {
		err := litedram.WithSoftwareControl(sim, func() error {
			return sim.ForceBitslip(2, 1)
		})

		Expect(errors.Is(err, litedram.ErrNoSuchModule)).To(BeTrue())
	})

	It("should answer SPD reads only at its address", func() {
		image, err := sim.ReadSPD(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(image).To(HaveLen(litedram.SPDSize))
		Expect(image[0]).To(Equal(byte(0x92)))

		_, err = sim.ReadSPD(3)
		Expect(errors.Is(err, litedram.ErrNoAck)).To(BeTrue())
	})
})
