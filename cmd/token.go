package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/qrave1/BerrowBooks/internal/application/clock"
	"github.com/qrave1/BerrowBooks/internal/application/config"
	"github.com/qrave1/BerrowBooks/internal/infra/adapters/postgres"
	"github.com/qrave1/BerrowBooks/internal/infra/adapters/postgres/repository"
	"github.com/qrave1/BerrowBooks/internal/usecase"
)

var tokenEmail string

// tokenCmd выпускает JWT для пользователя, создавая его при необходимости
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a session token for the given email",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.New()
		if err != nil {
			log.Fatalf("could not load config: %v", err)
		}

		db, err := postgres.NewPostgres(cmd.Context(), cfg.Postgres.DSN())
		if err != nil {
			log.Fatalf("connect to postgres: %v", err)
		}
		defer db.Close()

		userUsecase := usecase.NewUserUsecase([]byte(cfg.JWTSecret), clock.Real(), repository.NewUserRepo(db))

		user, err := userUsecase.EnsureUser(cmd.Context(), tokenEmail)
		if err != nil {
			log.Fatalf("ensure user: %v", err)
		}

		token, err := userUsecase.GenerateJWT(user)
		if err != nil {
			log.Fatalf("generate jwt: %v", err)
		}

		fmt.Println(token)
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "user email")
	_ = tokenCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(tokenCmd)
}
