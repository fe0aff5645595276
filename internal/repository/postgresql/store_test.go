package postgresql_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"job-assignment-service/internal/entity"
	"job-assignment-service/internal/repository"
	"job-assignment-service/internal/repository/postgresql"
	"job-assignment-service/internal/service"
)

var _ = Describe("Store", Ordered, func() {
	var (
		pool   *pgxpool.Pool
		store  *postgresql.Store
		engine *service.JobService
		ctx    context.Context
	)

	newPartner := func(phone string) *entity.Partner {
		p := &entity.Partner{
			PhoneNumber: phone,
			FirstName:   "Asha",
			LastName:    "Rao",
			City:        "Pune",
			Pincode:     "411001",
		}
		Expect(store.Partners().Create(ctx, p)).To(Succeed())
		return p
	}

	newJob := func(partnerID *uuid.UUID) *entity.Job {
		job, err := engine.CreateJob(ctx, service.CreateJobRequest{
			Name:              "Kitchen measurement",
			CustomerName:      "R. Iyer",
			Address:           "12 MG Road",
			City:              "Pune",
			Pincode:           411001,
			Type:              "measurement",
			Rate:              decimal.RequireFromString("1250.50"),
			DeliveryDate:      time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
			AssignedPartnerID: partnerID,
		})
		Expect(err).To(BeNil())
		return job
	}

	BeforeAll(func() {
		ctx = context.TODO()
		var err error
		pool, err = postgresql.NewPool(ctx, postgresql.PoolConfig{DSN: os.Getenv("POSTGRES_TEST_DSN")})
		Expect(err).To(BeNil())
		Expect(postgresql.Migrate(pool)).To(Succeed())

		store = postgresql.NewStore(pool)
		engine = service.NewJobService(store)
	})

	AfterAll(func() {
		pool.Close()
	})

	AfterEach(func() {
		_, err := pool.Exec(ctx, "TRUNCATE job_status_logs, jobs, partners")
		Expect(err).To(BeNil())
	})

	Context("partners", func() {
		It("rejects a duplicate phone number", func() {
			newPartner("919876543210")
			err := store.Partners().Create(ctx, &entity.Partner{PhoneNumber: "919876543210", FirstName: "B", LastName: "C", City: "Pune", Pincode: "411001"})
			Expect(errors.Is(err, repository.ErrDuplicateKey)).To(BeTrue())
		})

		It("finds a partner by phone", func() {
			p := newPartner("919876543211")
			got, err := store.Partners().GetByPhone(ctx, "919876543211")
			Expect(err).To(BeNil())
			Expect(got.ID).To(Equal(p.ID))
			Expect(got.IsAssigned).To(BeFalse())
		})

		It("approves a partner id and pages through partners", func() {
			a := newPartner("919876543220")
			newPartner("919876543221")

			Expect(store.Partners().SetIDVerified(ctx, a.ID)).To(Succeed())
			got, err := store.Partners().GetByID(ctx, a.ID)
			Expect(err).To(BeNil())
			Expect(got.IsIDVerified).To(BeTrue())

			Expect(errors.Is(store.Partners().SetIDVerified(ctx, uuid.New()), repository.ErrNotFound)).To(BeTrue())

			page, err := store.Partners().List(ctx, 0, 10)
			Expect(err).To(BeNil())
			Expect(page).To(HaveLen(2))
			Expect(page[0].ID).To(Equal(a.ID))

			page, err = store.Partners().List(ctx, 1, 10)
			Expect(err).To(BeNil())
			Expect(page).To(HaveLen(1))
		})

		It("returns ErrNotFound for an unknown id", func() {
			_, err := store.Partners().GetByID(ctx, uuid.New())
			Expect(errors.Is(err, repository.ErrNotFound)).To(BeTrue())
		})
	})

	Context("transactions", func() {
		It("rolls back and releases the connection when fn panics", func() {
			p := newPartner("919876543216")

			func() {
				defer func() { Expect(recover()).NotTo(BeNil()) }()
				_ = store.InTx(ctx, func(ctx context.Context, tx service.JobTx) error {
					ok, err := tx.AssignPartner(ctx, p.ID)
					Expect(err).To(BeNil())
					Expect(ok).To(BeTrue())
					panic("boom")
				})
			}()

			Expect(pool.Stat().AcquiredConns()).To(BeZero())
			got, err := store.Partners().GetByID(ctx, p.ID)
			Expect(err).To(BeNil())
			Expect(got.IsAssigned).To(BeFalse())
		})
	})

	Context("engine round trip", func() {
		It("starts, pauses and finishes a job", func() {
			p := newPartner("919876543212")
			job := newJob(&p.ID)

			_, err := engine.StartJob(ctx, job.ID, nil)
			Expect(err).To(BeNil())
			got, err := store.Partners().GetByID(ctx, p.ID)
			Expect(err).To(BeNil())
			Expect(got.IsAssigned).To(BeTrue())

			_, err = engine.PauseJob(ctx, job.ID, nil)
			Expect(err).To(BeNil())
			_, err = engine.StartJob(ctx, job.ID, nil)
			Expect(err).To(BeNil())
			finished, err := engine.FinishJob(ctx, job.ID, nil)
			Expect(err).To(BeNil())
			Expect(finished.Status).To(Equal(entity.StatusCompleted))
			Expect(finished.Rate.Equal(decimal.RequireFromString("1250.50"))).To(BeTrue())

			got, err = store.Partners().GetByID(ctx, p.ID)
			Expect(err).To(BeNil())
			Expect(got.IsAssigned).To(BeFalse())

			history, err := engine.GetStatusHistory(ctx, job.ID)
			Expect(err).To(BeNil())
			Expect(history).To(HaveLen(5))
			Expect(history[0].Status).To(Equal(entity.StatusCreated))
			Expect(*history[3].Notes).To(Equal("Job resumed"))
			Expect(history[4].Status).To(Equal(entity.StatusCompleted))
		})

		It("lets exactly one of two concurrent starts win", func() {
			p := newPartner("919876543213")
			a := newJob(&p.ID)
			b := newJob(&p.ID)

			var (
				wg   sync.WaitGroup
				errs = make([]error, 2)
			)
			for i, id := range []uuid.UUID{a.ID, b.ID} {
				wg.Add(1)
				go func(i int, id uuid.UUID) {
					defer GinkgoRecover()
					defer wg.Done()
					_, errs[i] = engine.StartJob(ctx, id, nil)
				}(i, id)
			}
			wg.Wait()

			failures := 0
			for _, err := range errs {
				if err != nil {
					Expect(errors.Is(err, service.ErrPartnerAlreadyAssigned)).To(BeTrue())
					failures++
				}
			}
			Expect(failures).To(Equal(1))
		})

		It("deletes a job with its log and releases the partner", func() {
			p := newPartner("919876543214")
			job := newJob(&p.ID)
			_, err := engine.StartJob(ctx, job.ID, nil)
			Expect(err).To(BeNil())

			Expect(engine.DeleteJob(ctx, job.ID)).To(Succeed())

			_, err = engine.GetJob(ctx, job.ID)
			Expect(errors.Is(err, service.ErrJobNotFound)).To(BeTrue())
			got, err := store.Partners().GetByID(ctx, p.ID)
			Expect(err).To(BeNil())
			Expect(got.IsAssigned).To(BeFalse())

			var n int
			Expect(pool.QueryRow(ctx, "SELECT count(*) FROM job_status_logs WHERE job_id = $1", job.ID).Scan(&n)).To(Succeed())
			Expect(n).To(BeZero())
		})

		It("keeps the partner flag when a paused job is deleted while another job starts", func() {
			for i := range 20 {
				p := newPartner(fmt.Sprintf("9198000000%02d", i))
				paused := newJob(&p.ID)
				next := newJob(&p.ID)
				_, err := engine.StartJob(ctx, paused.ID, nil)
				Expect(err).To(BeNil())
				_, err = engine.PauseJob(ctx, paused.ID, nil)
				Expect(err).To(BeNil())

				var (
					wg       sync.WaitGroup
					delErr   error
					startErr error
				)
				wg.Add(2)
				go func() {
					defer GinkgoRecover()
					defer wg.Done()
					delErr = engine.DeleteJob(ctx, paused.ID)
				}()
				go func() {
					defer GinkgoRecover()
					defer wg.Done()
					_, startErr = engine.StartJob(ctx, next.ID, nil)
				}()
				wg.Wait()
				Expect(delErr).To(BeNil())
				Expect(startErr).To(BeNil())

				got, err := store.Partners().GetByID(ctx, p.ID)
				Expect(err).To(BeNil())
				Expect(got.IsAssigned).To(BeTrue(), "partner flag lost in iteration %d", i)
			}
		})

		It("filters jobs by status and partner", func() {
			p := newPartner("919876543215")
			started := newJob(&p.ID)
			newJob(nil)
			_, err := engine.StartJob(ctx, started.ID, nil)
			Expect(err).To(BeNil())

			jobs, err := engine.ListJobs(ctx, entity.JobFilter{Status: entity.StatusInProgress})
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))
			Expect(jobs[0].ID).To(Equal(started.ID))

			jobs, err = engine.ListJobs(ctx, entity.JobFilter{PartnerID: &p.ID})
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(1))

			jobs, err = engine.ListJobs(ctx, entity.JobFilter{})
			Expect(err).To(BeNil())
			Expect(jobs).To(HaveLen(2))
		})
	})
})
