package rhtest_test

import (
	"bytes"
	"errors"
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/tr-rocks/litex/csr"
	"github.com/tr-rocks/litex/hooking"
	"github.com/tr-rocks/litex/rhtest"
)

var _ = Describe("Controller", func() {
	var (
		mockCtrl *gomock.Controller
		executor *MockExecutor
		bank     *csr.SimBank
		table    *rhtest.AttackTable
		out      *bytes.Buffer
		states   []rhtest.State
		results  []rhtest.CampaignResult
	)

	build := func(input string) *rhtest.Controller {
		c := rhtest.MakeBuilder().
			WithBank(bank).
			WithExecutor(executor).
			WithInput(rhtest.NewScriptedInput(input)).
			WithOutput(out).
			Build(table)

		c.AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
			switch item := ctx.Item.(type) {
			case rhtest.Transition:
				states = append(states, item.To)
			case rhtest.CampaignResult:
				results = append(results, item)
			}
		}))

		return c
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		executor = NewMockExecutor(mockCtrl)
		bank = csr.MakeBuilder().Build("Bank")
		table = &rhtest.AttackTable{}
		out = &bytes.Buffer{}
		states = nil
		results = nil

		Expect(table.Add(0, 0x1000, 10)).To(Succeed())
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should abort on n after an invalid character", func() {
		c := build("qn")

		final, err := c.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(final).To(Equal(rhtest.Aborted))
		Expect(c.State()).To(Equal(rhtest.Idle))
		Expect(states).To(Equal([]rhtest.State{
			rhtest.SummaryDisplayed,
			rhtest.AwaitingConfirmation,
			rhtest.Aborted,
			rhtest.Idle,
		}))
		Expect(bytes.Count(out.Bytes(), []byte("Proceed? Y/n :"))).To(Equal(2))
		Expect(out.String()).To(ContainSubstring("Exiting"))
	})

	It("should execute on a bare newline", func() {
		executor.EXPECT().
			Execute([]rhtest.AttackEntry{{Order: 0, Address: 0x1000, Count: 10}}).
			Return(nil)
		c := build("\n")

		final, err := c.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(final).To(Equal(rhtest.Executing))
		Expect(states).To(Equal([]rhtest.State{
			rhtest.SummaryDisplayed,
			rhtest.AwaitingConfirmation,
			rhtest.Executing,
			rhtest.Idle,
		}))
	})

	DescribeTable("confirmation characters",
		func(input string, executes bool) {
			if executes {
				executor.EXPECT().Execute(gomock.Any()).Return(nil)
			}
			c := build(input)

			final, err := c.Run()

			Expect(err).NotTo(HaveOccurred())
			if executes {
				Expect(final).To(Equal(rhtest.Executing))
			} else {
				Expect(final).To(Equal(rhtest.Aborted))
			}
		},
		Entry("y", "y", true),
		Entry("Y", "Y", true),
		Entry("n", "n", false),
		Entry("N", "N", false),
		Entry("junk then Y", "abc Y", true),
		Entry("junk then N", "x1N", false),
	)

	It("should surface executor failures", func() {
		hwErr := &csr.HardwareError{Err: errors.New("refresh stuck")}
		executor.EXPECT().Execute(gomock.Any()).Return(hwErr)
		c := build("y")

		final, err := c.Run()

		Expect(final).To(Equal(rhtest.Executing))
		Expect(errors.Is(err, hwErr)).To(BeTrue())
		Expect(c.State()).To(Equal(rhtest.Idle))
		Expect(results).To(HaveLen(1))
		Expect(results[0].Err).To(MatchError(ContainSubstring("refresh stuck")))
	})

	It("should not execute when input ends", func() {
		c := build("q")

		final, err := c.Run()

		Expect(final).To(Equal(rhtest.Aborted))
		Expect(errors.Is(err, io.EOF)).To(BeTrue())
		Expect(c.State()).To(Equal(rhtest.Idle))
	})

	It("should stay idle when the summary cannot be read", func() {
		bank.InjectFault(csr.RefreshRate, errors.New("bus error"))
		c := build("y")

		final, err := c.Run()

		Expect(final).To(Equal(rhtest.Idle))
		Expect(err).To(HaveOccurred())
		Expect(states).To(BeEmpty())
		Expect(out.String()).NotTo(ContainSubstring("Proceed"))
	})

	It("should tag every transition of a run with the same run id", func() {
		var ids []string
		c := build("n")
		c.AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
			if t, ok := ctx.Item.(rhtest.Transition); ok {
				ids = append(ids, t.RunID)
			}
		}))

		_, _ = c.Run()

		Expect(ids).To(HaveLen(4))
		Expect(ids[0]).NotTo(BeEmpty())
		for _, id := range ids {
			Expect(id).To(Equal(ids[0]))
		}
		Expect(results[0].RunID).To(Equal(ids[0]))
	})
})
