package infoserver_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/stretchr/testify/mock"
	"github.com/zhulik/fleetscaler/internal/core"
	"github.com/zhulik/fleetscaler/internal/fleet"
	"github.com/zhulik/fleetscaler/internal/infoserver"
	"github.com/zhulik/fleetscaler/internal/lease"
	"github.com/zhulik/fleetscaler/internal/metrics"
	"github.com/zhulik/fleetscaler/testhelpers"
	"github.com/zhulik/fleetscaler/testhelpers/mocks"
)

var errAPI = errors.New("api error")

var workers = []core.Instance{ //nolint:gochecknoglobals
	testhelpers.Instance("i-1", "Worker-1"),
	testhelpers.Instance("i-2", "Worker-2"),
	testhelpers.Instance("i-3", "Worker-3"),
}

// withDeadline matches contexts bounded by the default run timeout.
func withDeadline() any {
	return mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()

		return ok && !deadline.After(time.Now().Add(core.DefaultTimeout))
	})
}

var _ = Describe("Server", func() {
	var provider *mocks.MockProvider
	var publisher *mocks.MockEventPublisher
	var server *infoserver.Server

	request := func(method, path, body string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		req := httptest.NewRequest(method, path, strings.NewReader(body))

		server.Router.ServeHTTP(recorder, req)

		return recorder
	}

	BeforeEach(func() {
		provider = mocks.NewMockProvider(GinkgoT())
		publisher = mocks.NewMockEventPublisher(GinkgoT())

		provider.On("Name").Return("mock").Maybe()

		injector := testhelpers.NewInjector()
		do.ProvideValue[core.Provider](injector, provider)
		do.ProvideValue[core.EventPublisher](injector, publisher)
		metrics.Register(injector)
		lease.Register(injector)
		fleet.Register(injector)

		server = lo.Must(infoserver.NewServer(injector))
	})

	Describe("GET /provider", func() {
		It("returns provider info", func() {
			provider.On("Info", mock.Anything).Return(map[string]any{"provider": "mock"}, nil).Once()

			response := request(http.MethodGet, "/provider", "")

			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(response.Body.String()).To(MatchJSON(`{"provider":"mock"}`))
		})
	})

	Describe("GET /fleet", func() {
		It("returns the classified slots", func() {
			provider.On("ListInstances", mock.Anything).Return(workers, nil).Once()

			response := request(http.MethodGet, "/fleet", "")

			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(response.Body.String()).To(MatchJSON(`{
				"slots": [
					{"ordinal": 1, "instanceId": "i-1"},
					{"ordinal": 2, "instanceId": "i-2"},
					{"ordinal": 3, "instanceId": "i-3"}
				],
				"shadowed": []
			}`))
		})

		It("bounds the inventory query by the run timeout", func() {
			provider.On("ListInstances", withDeadline()).Return(workers, nil).Once()

			response := request(http.MethodGet, "/fleet", "")

			Expect(response.Code).To(Equal(http.StatusOK))
		})

		It("returns 502 when the inventory cannot be queried", func() {
			provider.On("ListInstances", mock.Anything).Return(nil, errAPI).Once()

			response := request(http.MethodGet, "/fleet", "")

			Expect(response.Code).To(Equal(http.StatusBadGateway))
			Expect(response.Body.String()).To(ContainSubstring("api error"))
		})
	})

	Describe("GET /plan/:count", func() {
		It("returns the plan without issuing commands", func() {
			provider.On("ListInstances", mock.Anything).Return(workers, nil).Once()

			response := request(http.MethodGet, "/plan/2", "")

			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(response.Body.String()).To(MatchJSON(`{
				"desiredCount": 2,
				"toStart": ["i-1", "i-2"],
				"toStop": ["i-3"],
				"unranked": [],
				"shadowed": []
			}`))
		})

		It("rejects non-integer counts", func() {
			response := request(http.MethodGet, "/plan/many", "")

			Expect(response.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects negative counts", func() {
			response := request(http.MethodGet, "/plan/-1", "")

			Expect(response.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /scale", func() {
		It("runs a scaling and returns the result", func() {
			provider.On("ListInstances", mock.Anything).Return(workers, nil).Once()
			provider.On("StopInstances", mock.Anything, []string{"i-3"}).Return(nil).Once()
			provider.On("StartInstances", mock.Anything, []string{"i-1", "i-2"}).Return(nil).Once()
			publisher.On("PublishScalingEvent", mock.Anything, mock.Anything).Return(nil).Once()

			response := request(http.MethodPost, "/scale", `{"count": 2}`)

			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(response.Body.String()).To(ContainSubstring(`"runId"`))
		})

		It("returns 502 with the failed batches", func() {
			provider.On("ListInstances", mock.Anything).Return(workers, nil).Once()
			provider.On("StopInstances", mock.Anything, []string{"i-3"}).Return(errAPI).Once()
			provider.On("StartInstances", mock.Anything, []string{"i-1", "i-2"}).Return(nil).Once()
			publisher.On("PublishScalingEvent", mock.Anything, mock.Anything).Return(nil).Once()

			response := request(http.MethodPost, "/scale", `{"count": 2}`)

			Expect(response.Code).To(Equal(http.StatusBadGateway))
			Expect(response.Body.String()).To(ContainSubstring(`"failedBatches": [`))
			Expect(response.Body.String()).To(ContainSubstring(`"stop"`))
		})

		It("bounds the run by the run timeout", func() {
			provider.On("ListInstances", withDeadline()).Return(workers, nil).Once()
			provider.On("StopInstances", withDeadline(), []string{"i-3"}).Return(nil).Once()
			provider.On("StartInstances", withDeadline(), []string{"i-1", "i-2"}).Return(nil).Once()
			publisher.On("PublishScalingEvent", mock.Anything, mock.Anything).Return(nil).Once()

			response := request(http.MethodPost, "/scale", `{"count": 2}`)

			Expect(response.Code).To(Equal(http.StatusOK))
		})

		It("accepts an explicit zero count", func() {
			provider.On("ListInstances", mock.Anything).Return(workers, nil).Once()
			provider.On("StopInstances", mock.Anything, []string{"i-1", "i-2", "i-3"}).Return(nil).Once()
			publisher.On("PublishScalingEvent", mock.Anything, mock.Anything).Return(nil).Once()

			response := request(http.MethodPost, "/scale", `{"count": 0}`)

			Expect(response.Code).To(Equal(http.StatusOK))
		})

		DescribeTable("rejects bodies without a count and issues no commands",
			func(body string) {
				response := request(http.MethodPost, "/scale", body)

				Expect(response.Code).To(Equal(http.StatusBadRequest))
				Expect(response.Body.String()).To(ContainSubstring("count is required"))
				provider.AssertNotCalled(GinkgoT(), "ListInstances", mock.Anything)
				provider.AssertNotCalled(GinkgoT(), "StopInstances", mock.Anything, mock.Anything)
				provider.AssertNotCalled(GinkgoT(), "StartInstances", mock.Anything, mock.Anything)
			},
			Entry("empty object", `{}`),
			Entry("misspelled field", `{"workers": 5}`),
			Entry("null count", `{"count": null}`),
		)

		It("rejects oversized bodies", func() {
			body := `{"count": 2, "instanceType": "` + strings.Repeat("x", infoserver.MaxScaleBodyBytes) + `"}`

			response := request(http.MethodPost, "/scale", body)

			Expect(response.Code).To(Equal(http.StatusRequestEntityTooLarge))
			provider.AssertNotCalled(GinkgoT(), "ListInstances", mock.Anything)
		})

		It("rejects malformed bodies", func() {
			response := request(http.MethodPost, "/scale", `{"count": "two"`)

			Expect(response.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /pulse", func() {
		It("is ok when every dependency is healthy", func() {
			provider.On("HealthCheck").Return(nil).Maybe()
			publisher.On("HealthCheck").Return(nil).Maybe()

			response := request(http.MethodGet, "/pulse", "")

			Expect(response.Code).To(Equal(http.StatusOK))
		})

		It("returns 503 when a dependency is unhealthy", func() {
			provider.On("HealthCheck").Return(errAPI).Maybe()
			publisher.On("HealthCheck").Return(nil).Maybe()

			response := request(http.MethodGet, "/pulse", "")

			Expect(response.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(response.Body.String()).To(ContainSubstring("api error"))
		})
	})

	Describe("GET /metrics", func() {
		It("exposes prometheus metrics", func() {
			response := request(http.MethodGet, "/metrics", "")

			Expect(response.Code).To(Equal(http.StatusOK))
			Expect(response.Body.String()).To(ContainSubstring("fleetscaler_desired_workers"))
		})
	})
})
