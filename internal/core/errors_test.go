package core_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/zhulik/fleetscaler/internal/core"
)

var errAPI = errors.New("api error")

var _ = Describe("Errors", func() {
	startFailure := &core.CommandFailure{Batch: core.BatchStart, InstanceIDs: []string{"i-1", "i-2"}, Cause: errAPI}
	stopFailure := &core.CommandFailure{Batch: core.BatchStop, InstanceIDs: []string{"i-3"}, Cause: errAPI}

	Describe("QueryFailure", func() {
		It("matches the sentinel and the cause", func() {
			err := fmt.Errorf("wrapped: %w", &core.QueryFailure{Provider: "ec2", Cause: errAPI})

			Expect(core.IsQueryFailure(err)).To(BeTrue())
			Expect(core.IsCommandFailure(err)).To(BeFalse())
			Expect(err).To(MatchError(errAPI))
			Expect(err.Error()).To(ContainSubstring("ec2"))
		})
	})

	Describe("CommandFailure", func() {
		It("names the batch and the instances", func() {
			Expect(startFailure.Error()).To(Equal("lifecycle command failed: start batch [i-1 i-2]: api error"))
			Expect(core.IsCommandFailure(startFailure)).To(BeTrue())
		})
	})

	Describe("FailedBatches", func() {
		DescribeTable("returns failed batches in start, stop order",
			func(err error, expected []core.Batch) {
				if len(expected) == 0 {
					Expect(core.FailedBatches(err)).To(BeEmpty())

					return
				}

				Expect(core.FailedBatches(err)).To(Equal(expected))
			},
			Entry("nil", nil, nil),
			Entry("unrelated error", errAPI, nil),
			Entry("start only", error(startFailure), []core.Batch{core.BatchStart}),
			Entry("stop only, wrapped", fmt.Errorf("run: %w", stopFailure), []core.Batch{core.BatchStop}),
			Entry("joined", errors.Join(stopFailure, startFailure), []core.Batch{core.BatchStart, core.BatchStop}),
		)
	})

	Describe("BatchFailure", func() {
		It("finds the failure of the requested batch inside a joined error", func() {
			err := fmt.Errorf("run: %w", errors.Join(startFailure, stopFailure))

			Expect(core.BatchFailure(err, core.BatchStop)).To(BeIdenticalTo(stopFailure))
			Expect(core.BatchFailure(err, core.BatchStart)).To(BeIdenticalTo(startFailure))
		})

		It("returns nil when the batch did not fail", func() {
			Expect(core.BatchFailure(startFailure, core.BatchStop)).To(BeNil())
		})
	})
})
