package csr_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tr-rocks/litex/csr"
	"github.com/tr-rocks/litex/hooking"
)

var _ = Describe("SimBank", func() {
	var bank *csr.SimBank

	BeforeEach(func() {
		bank = csr.MakeBuilder().
			WithDataWidth(256).
			WithRefreshRate(100).
			Build("Bank")
	})

	It("should come out of reset with refresh enabled", func() {
		on, err := csr.ReadBool(bank, csr.RefreshEnable)
		Expect(err).NotTo(HaveOccurred())
		Expect(on).To(BeTrue())

		rate, err := bank.Read(csr.RefreshRate)
		Expect(err).NotTo(HaveOccurred())
		Expect(rate).To(Equal(uint32(100)))

		width, err := bank.Read(csr.DataWidth)
		Expect(err).NotTo(HaveOccurred())
		Expect(width).To(Equal(uint32(256)))
	})

	It("should reject writes to the data width", func() {
		err := bank.Write(csr.DataWidth, 64)

		var hwErr *csr.HardwareError
		Expect(errors.As(err, &hwErr)).To(BeTrue())
		Expect(hwErr.Addr).To(Equal(csr.DataWidth))
		Expect(errors.Is(err, csr.ErrReadOnly)).To(BeTrue())
	})

	It("should reject unknown registers", func() {
		_, err := bank.Read(csr.Timer(csr.NumTimerChannels))

		Expect(errors.Is(err, csr.ErrNoSuchRegister)).To(BeTrue())
	})

	It("should route pattern writes by row parity", func() {
		Expect(csr.WritePattern(bank, 0, 0xdeadbeef)).To(Succeed())
		Expect(csr.WritePattern(bank, 1, 0x12345678)).To(Succeed())

		even, err := csr.ReadPattern(bank, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(even).To(Equal(uint32(0xdeadbeef)))

		odd, err := csr.ReadPattern(bank, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(odd).To(Equal(uint32(0x12345678)))
	})

	It("should disable refresh when the rate is zero", func() {
		Expect(csr.SetRefresh(bank, 0)).To(Succeed())

		on, err := csr.ReadBool(bank, csr.RefreshEnable)
		Expect(err).NotTo(HaveOccurred())
		Expect(on).To(BeFalse())

		rate, _ := bank.Read(csr.RefreshRate)
		Expect(rate).To(Equal(uint32(100)))
	})

	It("should enable refresh and set the rate", func() {
		Expect(csr.SetRefresh(bank, 0)).To(Succeed())
		Expect(csr.SetRefresh(bank, 42)).To(Succeed())

		on, _ := csr.ReadBool(bank, csr.RefreshEnable)
		rate, _ := bank.Read(csr.RefreshRate)
		Expect(on).To(BeTrue())
		Expect(rate).To(Equal(uint32(42)))
	})

	It("should hold timer values per physical channel", func() {
		Expect(csr.WriteTimer(bank, 3, 100)).To(Succeed())

		v, err := csr.ReadTimer(bank, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint32(100)))

		other, _ := csr.ReadTimer(bank, 2)
		Expect(other).To(BeZero())
	})

	It("should fail accesses to faulted registers", func() {
		fault := errors.New("bus timeout")
		bank.InjectFault(csr.AutoPrecharge, fault)

		err := csr.WriteBool(bank, csr.AutoPrecharge, true)
		Expect(errors.Is(err, fault)).To(BeTrue())

		bank.InjectFault(csr.AutoPrecharge, nil)
		Expect(csr.WriteBool(bank, csr.AutoPrecharge, true)).To(Succeed())
	})

	It("should invoke hooks on every access", func() {
		var seen []string
		bank.AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
			access := ctx.Item.(csr.Access)
			seen = append(seen, ctx.Pos.Name+" "+access.Addr.String())
		}))

		_ = bank.Write(csr.AutoPrecharge, 1)
		_, _ = bank.Read(csr.AutoPrecharge)

		Expect(seen).To(Equal([]string{
			"RegWrite auto_precharge",
			"RegRead auto_precharge",
		}))
	})

	It("should snapshot registers in address order without hooks", func() {
		calls := 0
		bank.AcceptHook(hooking.HookFunc(func(hooking.HookCtx) { calls++ }))

		snapshot := bank.Snapshot()

		Expect(calls).To(BeZero())
		Expect(snapshot[0].Name).To(Equal("refresh_enable"))
		for i := 1; i < len(snapshot); i++ {
			Expect(snapshot[i].Addr).To(BeNumerically(">", snapshot[i-1].Addr))
		}
	})
})

var _ = Describe("Addr", func() {
	It("should name timer registers by channel", func() {
		Expect(csr.Timer(2).String()).To(Equal("timer2"))

		ch, ok := csr.IsTimer(csr.Timer(5))
		Expect(ok).To(BeTrue())
		Expect(ch).To(Equal(uint32(5)))

		_, ok = csr.IsTimer(csr.RefreshRate)
		Expect(ok).To(BeFalse())
	})
})
