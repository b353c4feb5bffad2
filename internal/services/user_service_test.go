package services_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/ladino-web/internal/domain/entities"
	domainerrors "github.com/rafabene/ladino-web/internal/domain/errors"
	"github.com/rafabene/ladino-web/internal/domain/session"
	"github.com/rafabene/ladino-web/internal/infrastructure/logging"
	"github.com/rafabene/ladino-web/internal/infrastructure/persistence/sqlstore"
	"github.com/rafabene/ladino-web/internal/infrastructure/security"
	sessionstore "github.com/rafabene/ladino-web/internal/infrastructure/session"
	"github.com/rafabene/ladino-web/internal/services"
)

func validInput() *services.UserInput {
	return &services.UserInput{
		Email:                "  Ana@Example.COM ",
		Name:                 "Ana",
		Password:             "segredo",
		PasswordConfirmation: "segredo",
	}
}

var _ = Describe("UserService", func() {
	var (
		ctx     context.Context
		service *services.UserService
	)

	BeforeEach(func() {
		ctx = context.Background()
		db := newTestDB()
		service = services.NewUserService(
			sqlstore.NewUserRepository(db),
			sqlstore.NewUnitOfWork(db),
			security.PlainHasher{},
			sessionstore.NewStore(time.Minute),
			logging.NewNopLogger(),
		)
	})

	Describe("Validate", func() {
		DescribeTable("retorna a primeira falha na ordem dos campos",
			func(mutate func(*services.UserInput), key string) {
				input := validInput()
				mutate(input)

				err := service.Validate(input)
				ve, ok := domainerrors.AsValidation(err)
				Expect(ok).To(BeTrue())
				Expect(ve.Key).To(Equal(key))
			},
			Entry("email vazio", func(in *services.UserInput) { in.Email = "  "; in.Name = "" }, domainerrors.KeyEmailRequired),
			Entry("nome vazio", func(in *services.UserInput) { in.Name = ""; in.Password = "" }, domainerrors.KeyNameRequired),
			Entry("senha vazia", func(in *services.UserInput) { in.Password = "" }, domainerrors.KeyPasswordRequired),
			Entry("confirmação vazia", func(in *services.UserInput) { in.PasswordConfirmation = "" }, domainerrors.KeyConfirmationRequired),
			Entry("confirmação diferente", func(in *services.UserInput) { in.PasswordConfirmation = "outra" }, domainerrors.KeyPasswordMismatch),
		)

		It("rejeita entrada ausente", func() {
			ve, ok := domainerrors.AsValidation(service.Validate(nil))
			Expect(ok).To(BeTrue())
			Expect(ve.Key).To(Equal(domainerrors.KeyUserMissing))
		})

		It("normaliza o email em caso de sucesso", func() {
			input := validInput()
			Expect(service.Validate(input)).To(Succeed())
			Expect(input.Email).To(Equal("ana@example.com"))
		})
	})

	Describe("Create", func() {
		It("grava um usuário ativo", func() {
			user, err := service.Create(ctx, validInput())
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).NotTo(BeZero())
			Expect(user.Status).To(Equal(entities.StatusActive))

			stored, err := service.Get(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Email.String()).To(Equal("ana@example.com"))
		})

		It("rejeita email duplicado", func() {
			_, err := service.Create(ctx, validInput())
			Expect(err).NotTo(HaveOccurred())

			input := validInput()
			input.Email = "ANA@example.com"
			_, err = service.Create(ctx, input)
			Expect(err).To(MatchError(domainerrors.ErrEmailAlreadyExists))
		})

		It("rejeita email de usuário desativado", func() {
			user, err := service.Create(ctx, validInput())
			Expect(err).NotTo(HaveOccurred())
			Expect(service.SoftDelete(ctx, user.ID)).To(Succeed())

			_, err = service.Create(ctx, validInput())
			Expect(err).To(MatchError(domainerrors.ErrEmailAlreadyExists))
		})
	})

	Describe("Login", func() {
		BeforeEach(func() {
			_, err := service.Create(ctx, validInput())
			Expect(err).NotTo(HaveOccurred())
		})

		It("autentica com email em qualquer caixa", func() {
			user, err := service.Login(ctx, "ANA@example.com", "segredo")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Name).To(Equal("Ana"))
		})

		It("rejeita senha errada", func() {
			_, err := service.Login(ctx, "ana@example.com", "errada")
			Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))
		})

		It("rejeita usuário desativado", func() {
			user, err := service.Login(ctx, "ana@example.com", "segredo")
			Expect(err).NotTo(HaveOccurred())
			Expect(service.SoftDelete(ctx, user.ID)).To(Succeed())

			_, err = service.Login(ctx, "ana@example.com", "segredo")
			Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))
		})

		It("volta a autenticar depois de reativado", func() {
			user, err := service.Login(ctx, "ana@example.com", "segredo")
			Expect(err).NotTo(HaveOccurred())
			Expect(service.SoftDelete(ctx, user.ID)).To(Succeed())
			Expect(service.Reactivate(ctx, user.ID)).To(Succeed())

			_, err = service.Login(ctx, "ana@example.com", "segredo")
			Expect(err).NotTo(HaveOccurred())
		})

		It("reativar usuário inexistente", func() {
			Expect(service.Reactivate(ctx, 999)).To(MatchError(domainerrors.ErrUserNotFound))
		})
	})

	Describe("Update", func() {
		It("altera nome, email e senha", func() {
			user, err := service.Create(ctx, validInput())
			Expect(err).NotTo(HaveOccurred())

			input := &services.UserInput{
				ID:                   user.ID,
				Email:                "ana.silva@example.com",
				Name:                 "Ana Silva",
				Password:             "nova",
				PasswordConfirmation: "nova",
			}
			updated, err := service.Update(ctx, input)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Ana Silva"))

			_, err = service.Login(ctx, "ana.silva@example.com", "nova")
			Expect(err).NotTo(HaveOccurred())
		})

		It("não permite assumir o email de outro usuário", func() {
			_, err := service.Create(ctx, validInput())
			Expect(err).NotTo(HaveOccurred())

			other := validInput()
			other.Email = "bia@example.com"
			bia, err := service.Create(ctx, other)
			Expect(err).NotTo(HaveOccurred())

			input := validInput()
			input.ID = bia.ID
			_, err = service.Update(ctx, input)
			Expect(err).To(MatchError(domainerrors.ErrEmailAlreadyExists))
		})

		It("usuário inexistente", func() {
			input := validInput()
			input.ID = 999
			_, err := service.Update(ctx, input)
			Expect(err).To(MatchError(domainerrors.ErrUserNotFound))
		})
	})

	Describe("sessão", func() {
		It("grava, retoma e encerra", func() {
			user, err := service.Create(ctx, validInput())
			Expect(err).NotTo(HaveOccurred())

			service.PersistToSession("sid", user)

			resumed, current, ok := service.ResumeSession(ctx, "sid")
			Expect(ok).To(BeTrue())
			Expect(current.ID).To(Equal(user.ID))

			fromCtx, ok := service.CurrentFromSession(resumed)
			Expect(ok).To(BeTrue())
			Expect(fromCtx.Email.String()).To(Equal("ana@example.com"))

			service.ClearSession("sid")
			_, _, ok = service.ResumeSession(ctx, "sid")
			Expect(ok).To(BeFalse())
		})

		It("contexto sem sessão é anônimo", func() {
			_, ok := service.CurrentFromSession(ctx)
			Expect(ok).To(BeFalse())

			_, ok = session.UserFrom(ctx)
			Expect(ok).To(BeFalse())
		})
	})
})
