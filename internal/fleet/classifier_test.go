package fleet_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/samber/lo"
	"github.com/zhulik/fleetscaler/internal/core"
	"github.com/zhulik/fleetscaler/internal/fleet"
	"github.com/zhulik/fleetscaler/testhelpers"
)

func slotIDs(slots []core.Slot) []string {
	return lo.Map(slots, func(slot core.Slot, _ int) string { return slot.InstanceID })
}

var _ = Describe("Classify", func() {
	Context("when the inventory is empty", func() {
		It("returns no slots", func() {
			classification := fleet.Classify(nil)

			Expect(classification.Slots).To(BeEmpty())
			Expect(classification.Shadowed).To(BeEmpty())
		})
	})

	Context("when the inventory mixes workers and other instances", func() {
		It("keeps workers only", func() {
			classification := fleet.Classify([]core.Instance{
				testhelpers.Instance("i-1", "Worker-1"),
				testhelpers.Instance("i-9", "Database-main"),
				{ID: "i-8"},
			})

			Expect(slotIDs(classification.Slots)).To(Equal([]string{"i-1"}))
		})
	})

	Context("when ordinals are out of order", func() {
		It("orders numeric ordinals ascending, then tokens", func() {
			classification := fleet.Classify([]core.Instance{
				testhelpers.Instance("i-b", "Worker-beta"),
				testhelpers.Instance("i-10", "Worker-10"),
				testhelpers.Instance("i-2", "Worker-2"),
				testhelpers.Instance("i-a", "Worker-alpha"),
			})

			Expect(slotIDs(classification.Slots)).To(Equal([]string{"i-2", "i-10", "i-a", "i-b"}))
		})
	})

	Context("when two instances carry the same ordinal", func() {
		It("keeps the later one and reports the earlier as shadowed", func() {
			classification := fleet.Classify([]core.Instance{
				testhelpers.Instance("i-early", "Worker-2"),
				testhelpers.Instance("i-1", "Worker-1"),
				testhelpers.Instance("i-late", "Worker-2"),
			})

			Expect(slotIDs(classification.Slots)).To(Equal([]string{"i-1", "i-late"}))
			Expect(classification.Shadowed).To(Equal([]string{"i-early"}))
		})

		It("treats zero padded indexes as the same ordinal", func() {
			classification := fleet.Classify([]core.Instance{
				testhelpers.Instance("i-padded", "Worker-02"),
				testhelpers.Instance("i-plain", "Worker-2"),
			})

			Expect(slotIDs(classification.Slots)).To(Equal([]string{"i-plain"}))
			Expect(classification.Shadowed).To(Equal([]string{"i-padded"}))
		})

		It("applies the same rule to token ordinals", func() {
			classification := fleet.Classify([]core.Instance{
				testhelpers.Instance("i-x1", "Worker-x"),
				testhelpers.Instance("i-x2", "Worker-x"),
			})

			Expect(slotIDs(classification.Slots)).To(Equal([]string{"i-x2"}))
			Expect(classification.Shadowed).To(Equal([]string{"i-x1"}))
		})
	})
})
