package main

import (
	"fmt"
	"net/http"

	"github.com/fieldops/worklog-backend-go/internal/config"
	appHTTP "github.com/fieldops/worklog-backend-go/internal/handler/http"
	"github.com/fieldops/worklog-backend-go/internal/pkg/database"
	"github.com/fieldops/worklog-backend-go/internal/pkg/jwt"
	"github.com/fieldops/worklog-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/fieldops/worklog-backend-go/internal/service/auth"
	serviceAuthz "github.com/fieldops/worklog-backend-go/internal/service/authz"
	serviceCompany "github.com/fieldops/worklog-backend-go/internal/service/company"
	serviceJob "github.com/fieldops/worklog-backend-go/internal/service/job"
	"github.com/fieldops/worklog-backend-go/internal/service/rates"
	serviceUser "github.com/fieldops/worklog-backend-go/internal/service/user"
	serviceWorkEntry "github.com/fieldops/worklog-backend-go/internal/service/workentry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	tokenRepo := postgresql.NewTokenRepository(db)
	authzRepo := postgresql.NewAuthzRepository(db)
	jobRepo := postgresql.NewJobRepository(db)
	workEntryRepo := postgresql.NewWorkEntryRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	resolver := serviceAuthz.NewResolver(authzRepo, userRepo)
	rateEngine := rates.NewEngine(jobRepo)

	authService := serviceAuth.NewAuthService(db, userRepo, JWTService, tokenRepo)
	companyService := serviceCompany.NewCompanyService(db, companyRepo)
	userService := serviceUser.NewUserService(db, userRepo, resolver)
	roleService := serviceAuthz.NewRoleService(db, authzRepo)
	jobService := serviceJob.NewJobService(db, jobRepo, resolver)
	workEntryService := serviceWorkEntry.NewWorkEntryService(workEntryRepo, jobRepo, resolver, rateEngine)

	authHandler := appHTTP.NewAuthHandler(JWTService, authService)
	companyHandler := appHTTP.NewCompanyHandler(companyService)
	userHandler := appHTTP.NewUserHandler(userService)
	roleHandler := appHTTP.NewRoleHandler(roleService)
	jobHandler := appHTTP.NewJobHandler(jobService)
	workEntryHandler := appHTTP.NewWorkEntryHandler(workEntryService)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		companyHandler,
		userHandler,
		roleHandler,
		jobHandler,
		workEntryHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
