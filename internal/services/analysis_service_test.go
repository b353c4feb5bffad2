package services_test

import (
	"context"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/rafabene/ladino-web/internal/domain/entities"
	domainerrors "github.com/rafabene/ladino-web/internal/domain/errors"
	"github.com/rafabene/ladino-web/internal/domain/repositories"
	"github.com/rafabene/ladino-web/internal/domain/session"
	"github.com/rafabene/ladino-web/internal/domain/valueobjects"
	"github.com/rafabene/ladino-web/internal/infrastructure/logging"
	"github.com/rafabene/ladino-web/internal/infrastructure/persistence/sqlstore"
	"github.com/rafabene/ladino-web/internal/services"
)

func ptr(s string) *string { return &s }

func formInput(asset string) services.AnalysisInput {
	return services.AnalysisInput{
		Description:    ptr("Scalper mini índice"),
		StartDate:      ptr("02/01/2023"),
		EndDate:        ptr("30/06/2023"),
		Asset:          ptr(asset),
		InitialDeposit: ptr("1.000,00"),
		TotalGain:      ptr("1.234,56"),
		TradeCount:     ptr("10"),
		MaxVolume:      ptr("2"),
	}
}

var _ = Describe("AnalysisService", func() {
	var (
		ctx      context.Context
		service  *services.AnalysisService
		users    repositories.UserRepository
		ana, bia *entities.User
	)

	createUser := func(name, email string) *entities.User {
		user := &entities.User{Name: name, Email: valueobjects.NewEmail(email), Password: "x", Status: entities.StatusActive}
		Expect(users.Create(ctx, user)).To(Succeed())
		return user
	}

	publish := func(owner *entities.User, asset string) int64 {
		a, err := service.FromSubmittedForm(nil, formInput(asset), services.AnalysisUploads{
			SetFile: []byte("; gerado pelo testador\r\nCorretagem=0.50\r\nLote=1\r\n"),
		})
		Expect(err).NotTo(HaveOccurred())

		id, err := service.Create(session.WithUser(ctx, owner), a)
		Expect(err).NotTo(HaveOccurred())
		return id
	}

	BeforeEach(func() {
		ctx = context.Background()
		db := newTestDB()
		users = sqlstore.NewUserRepository(db)
		service = services.NewAnalysisService(
			sqlstore.NewAnalysisRepository(db),
			sqlstore.NewUnitOfWork(db),
			logging.NewNopLogger(),
		)
		ana = createUser("Ana", "ana@example.com")
		bia = createUser("Bia", "bia@example.com")
	})

	Describe("FromSubmittedForm", func() {
		It("normaliza números e datas no formato brasileiro", func() {
			a, err := service.FromSubmittedForm(nil, formInput("win"), services.AnalysisUploads{})
			Expect(err).NotTo(HaveOccurred())

			Expect(a.Asset).To(Equal("WIN"))
			Expect(a.TotalGain.Equal(decimal.RequireFromString("1234.56"))).To(BeTrue())
			Expect(valueobjects.CanonicalNumber(a.InitialDeposit)).To(Equal("1000.00"))
			Expect(valueobjects.FormatDate(a.EndDate)).To(Equal("30/06/2023"))
			Expect(a.Status).To(Equal(entities.StatusActive))
		})

		It("número mal formatado vira erro de validação", func() {
			input := formInput("WIN")
			input.TotalGain = ptr("abc")

			_, err := service.FromSubmittedForm(nil, input, services.AnalysisUploads{})
			ve, ok := domainerrors.AsValidation(err)
			Expect(ok).To(BeTrue())
			Expect(ve.Field).To(Equal("ganho_total"))
			Expect(ve.Key).To(Equal(domainerrors.KeyMalformedNumber))
		})

		It("data mal formatada vira erro de validação", func() {
			input := formInput("WIN")
			input.StartDate = ptr("31/02/2023")

			_, err := service.FromSubmittedForm(nil, input, services.AnalysisUploads{})
			ve, ok := domainerrors.AsValidation(err)
			Expect(ok).To(BeTrue())
			Expect(ve.Key).To(Equal(domainerrors.KeyMalformedDate))
		})

		It("mantém campos e arquivos que não vieram no formulário", func() {
			existing := &entities.Analysis{
				ID:          5,
				Description: "Antiga",
				Asset:       "WDO",
				ConfigData:  "corretagem=1",
				ReportHTML:  "<p>relatório</p>",
			}
			a, err := service.FromSubmittedForm(existing, services.AnalysisInput{Description: ptr("Nova")}, services.AnalysisUploads{
				CapitalImage: []byte("png"),
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(a.ID).To(Equal(int64(5)))
			Expect(a.Description).To(Equal("Nova"))
			Expect(a.Asset).To(Equal("WDO"))
			Expect(a.ConfigData).To(Equal("corretagem=1"))
			Expect(a.ReportHTML).To(Equal("<p>relatório</p>"))
			Expect(a.CapitalImage).To(Equal("cG5n\r\n"))
			Expect(existing.Description).To(Equal("Antiga"))
		})
	})

	Describe("Create", func() {
		It("exige usuário logado e não grava nada", func() {
			a, err := service.FromSubmittedForm(nil, formInput("WIN"), services.AnalysisUploads{})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, a)
			Expect(err).To(MatchError(domainerrors.ErrAuthRequired))

			all, err := service.List(ctx, repositories.AnalysisFilters{})
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(BeEmpty())
		})

		It("dono vem da sessão, não do formulário", func() {
			a, err := service.FromSubmittedForm(nil, formInput("WIN"), services.AnalysisUploads{})
			Expect(err).NotTo(HaveOccurred())
			a.OwnerID = bia.ID

			id, err := service.Create(session.WithUser(ctx, ana), a)
			Expect(err).NotTo(HaveOccurred())

			view, err := service.Get(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.OwnerID).To(Equal(ana.ID))
			Expect(view.OwnerName).To(Equal("Ana"))
		})
	})

	Describe("Get", func() {
		It("calcula corretagem e resultado líquido", func() {
			id := publish(ana, "WIN")

			view, err := service.Get(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Config).To(HaveKeyWithValue("lote", "1"))
			Expect(view.BrokerageFee.Valid).To(BeTrue())
			Expect(view.BrokerageTotal.Decimal.Equal(decimal.RequireFromString("5"))).To(BeTrue())
			Expect(view.NetResult.Decimal.Equal(decimal.RequireFromString("1229.56"))).To(BeTrue())
		})

		It("análise inexistente", func() {
			_, err := service.Get(ctx, 404)
			Expect(err).To(MatchError(domainerrors.ErrAnalysisNotFound))
		})
	})

	Describe("Update", func() {
		It("exige id", func() {
			err := service.Update(session.WithUser(ctx, ana), &entities.Analysis{})
			Expect(err).To(MatchError(domainerrors.ErrAnalysisIDRequired))
		})

		It("somente o dono altera", func() {
			id := publish(ana, "WIN")
			view, err := service.Get(ctx, id)
			Expect(err).NotTo(HaveOccurred())

			changed, err := service.FromSubmittedForm(&view.Analysis, services.AnalysisInput{Description: ptr("Invasão")}, services.AnalysisUploads{})
			Expect(err).NotTo(HaveOccurred())

			err = service.Update(session.WithUser(ctx, bia), changed)
			Expect(err).To(MatchError(domainerrors.ErrForbidden))

			Expect(service.Update(session.WithUser(ctx, ana), changed)).To(Succeed())
			after, err := service.Get(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(after.Description).To(Equal("Invasão"))
			Expect(after.ConfigData).To(ContainSubstring("Corretagem=0.50"))
		})
	})

	Describe("SoftDelete", func() {
		It("remove da listagem apenas pelo dono", func() {
			id := publish(ana, "WIN")

			Expect(service.SoftDelete(session.WithUser(ctx, bia), id)).To(MatchError(domainerrors.ErrForbidden))
			Expect(service.SoftDelete(ctx, id)).To(MatchError(domainerrors.ErrAuthRequired))
			Expect(service.SoftDelete(session.WithUser(ctx, ana), id)).To(Succeed())

			all, err := service.List(ctx, repositories.AnalysisFilters{})
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(BeEmpty())

			view, err := service.Get(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Status).To(Equal(entities.StatusInactive))
		})

		It("desativação administrativa dispensa sessão", func() {
			id := publish(ana, "WIN")
			Expect(service.Deactivate(ctx, id)).To(Succeed())
			Expect(service.Deactivate(ctx, 999)).To(MatchError(domainerrors.ErrAnalysisNotFound))
		})
	})

	DescribeTable("quantidade de páginas",
		func(total int64, size, want int) {
			page := &services.AnalysisPage{Total: total, PageSize: size}
			Expect(page.Pages()).To(Equal(want))
		},
		Entry("sem registros", int64(0), 20, 1),
		Entry("um registro", int64(1), 20, 1),
		Entry("página cheia", int64(20), 20, 1),
		Entry("um a mais", int64(21), 20, 2),
		Entry("três páginas", int64(45), 20, 3),
		Entry("tamanho inválido", int64(10), 0, 1),
	)

	Describe("listagens", func() {
		BeforeEach(func() {
			for i := 0; i < 25; i++ {
				publish(ana, "WIN")
			}
			for i := 0; i < 3; i++ {
				publish(bia, "WDO")
			}
			publish(bia, "PETR4")
		})

		It("pagina de 20 em 20", func() {
			page, err := service.ListPage(ctx, repositories.AnalysisFilters{}, 2, 20)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(Equal(int64(29)))
			Expect(page.Pages()).To(Equal(2))
			Expect(page.Page).To(Equal(2))
			Expect(page.Items).To(HaveLen(9))
		})

		It("página fora do intervalo volta para a primeira", func() {
			for _, pg := range []int{0, -1, 3, 99} {
				page, err := service.ListPage(ctx, repositories.AnalysisFilters{}, pg, 20)
				Expect(err).NotTo(HaveOccurred())
				Expect(page.Page).To(Equal(1))
				Expect(page.Items).To(HaveLen(20))
			}
		})

		It("filtra por dono e por ativo", func() {
			ownerID := bia.ID
			byOwner, err := service.List(ctx, repositories.AnalysisFilters{OwnerID: &ownerID})
			Expect(err).NotTo(HaveOccurred())
			Expect(byOwner).To(HaveLen(4))

			byAsset, err := service.List(ctx, repositories.AnalysisFilters{Asset: "WDO"})
			Expect(err).NotTo(HaveOccurred())
			Expect(byAsset).To(HaveLen(3))
			for _, v := range byAsset {
				Expect(strings.ToUpper(v.Asset)).To(Equal("WDO"))
			}
		})

		It("conta ativos do menos para o mais frequente", func() {
			counts, err := service.ListAssetCounts(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(counts).To(Equal([]repositories.AssetCount{
				{Asset: "PETR4", Count: 1},
				{Asset: "WDO", Count: 3},
				{Asset: "WIN", Count: 25},
			}))
		})
	})
})
