package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/DrWallflower/minibank/internal/application/interfaces"
	"github.com/DrWallflower/minibank/internal/application/params"
	"github.com/DrWallflower/minibank/internal/application/services"
	"github.com/DrWallflower/minibank/internal/config"
	"github.com/DrWallflower/minibank/internal/domain/entities"
	"github.com/DrWallflower/minibank/internal/infrastructure/textlog"
	"github.com/DrWallflower/minibank/internal/models/errs"
	"github.com/DrWallflower/minibank/pkg/logger"
	"github.com/shopspring/decimal"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()

	cfg := config.MustLoad()

	logger := logger.New(cfg)
	defer func() {
		_ = logger.Sync()
	}()

	accountStore, err := textlog.NewAccountStore(cfg.Storage.AccountsFile, logger)
	if err != nil {
		return fmt.Errorf("failed to init account store: %w", err)
	}

	transactionStore, err := textlog.NewTransactionStore(cfg.Storage.TransactionsFile, logger)
	if err != nil {
		return fmt.Errorf("failed to init transaction store: %w", err)
	}

	bankService, err := services.NewBankService(ctx, accountStore, transactionStore, nil, logger)
	if err != nil {
		return fmt.Errorf("failed to init bank service: %w", err)
	}

	p := &program{
		in:   bufio.NewReader(os.Stdin),
		bank: bankService,
	}
	p.execute(ctx)

	fmt.Println()
	fmt.Println("Fin du programme")
	return nil
}

type program struct {
	in   *bufio.Reader
	bank interfaces.BankService
}

func (p *program) execute(ctx context.Context) {
	mainMenu := &menu{
		title: "Banque",
		options: []option{
			{'O', "Ouvrir un nouveau compte"},
			{'L', "Lister les comptes"},
			{'A', "Acceder a un compte"},
			{'Q', "Quitter"},
		},
	}

	for {
		switch mainMenu.show(p.in) {
		case 'O':
			p.openAccount(ctx)
		case 'L':
			p.listAccounts(ctx)
		case 'A':
			p.accessAccount(ctx)
		case 'Q':
			return
		}
	}
}

func (p *program) openAccount(ctx context.Context) {
	fmt.Println("Ouverture de compte")

	kind := p.readAccountType()
	firstName := p.readLine("Indiquez le prenom du proprietaire: ")
	lastName := p.readLine("Indiquez le nom du proprietaire: ")

	// Credit accounts always start with a zero balance.
	amount := decimal.Zero
	if kind != string(entities.Credit) {
		amount = p.readAmount("Indiquez le montant initial: ")
	}

	number, err := p.bank.OpenAccount(ctx, params.NewOpenAccount(kind, firstName, lastName, amount))
	if err != nil {
		p.report(err)
		return
	}
	fmt.Printf("Le compte %d a ete ajoute\n", number)
}

func (p *program) listAccounts(ctx context.Context) {
	lines := p.bank.ListAccounts(ctx)
	if len(lines) == 0 {
		fmt.Println("Aucun compte")
		return
	}
	for _, line := range lines {
		fmt.Println(line)
	}
}

func (p *program) accessAccount(ctx context.Context) {
	number := p.readInt("Indiquez le numero du compte: ")
	if err := p.bank.ValidateExists(ctx, number); err != nil {
		p.report(err)
		return
	}

	accountMenu := &menu{
		title: fmt.Sprintf("Compte %d", number),
		options: []option{
			{'S', "Afficher solde"},
			{'T', "Effectuer des transactions"},
			{'R', "Releve de transactions"},
			{'Q', "Retour au menu principal"},
		},
	}

	for {
		switch accountMenu.show(p.in) {
		case 'S':
			p.showBalance(ctx, number)
		case 'T':
			p.transactions(ctx, number)
		case 'R':
			p.statement(ctx, number)
		case 'Q':
			return
		}
	}
}

func (p *program) transactions(ctx context.Context, number int) {
	transactionMenu := &menu{
		title: fmt.Sprintf("Transactions sur le compte %d", number),
		options: []option{
			{'D', "Effectuer un depot"},
			{'R', "Effectuer un retrait"},
			{'I', "Calculer les interets"},
			{'Q', "Retour au menu principal"},
		},
	}

	for {
		switch transactionMenu.show(p.in) {
		case 'D':
			amount := p.readAmount("Indiquez le montant a deposer: ")
			balance, err := p.bank.Deposit(ctx, number, amount)
			if err != nil {
				p.report(err)
				continue
			}
			fmt.Printf("Nouveau solde: %s $\n", balance.StringFixed(2))
		case 'R':
			amount := p.readAmount("Indiquez le montant a retirer: ")
			balance, err := p.bank.Withdraw(ctx, number, amount)
			if err != nil {
				p.report(err)
				continue
			}
			fmt.Printf("Nouveau solde: %s $\n", balance.StringFixed(2))
		case 'I':
			interest, err := p.bank.Interest(ctx, number)
			if err != nil {
				p.report(err)
				continue
			}
			fmt.Printf("Interets: %s $\n", interest.StringFixed(2))
		case 'Q':
			return
		}
	}
}

func (p *program) showBalance(ctx context.Context, number int) {
	balance, err := p.bank.Balance(ctx, number)
	if err != nil {
		p.report(err)
		return
	}
	fmt.Printf("Solde: %s $\n", balance.StringFixed(2))
}

func (p *program) statement(ctx context.Context, number int) {
	lines, err := p.bank.Transactions(ctx, number)
	if err != nil {
		p.report(err)
		return
	}
	if len(lines) == 0 {
		fmt.Println("Aucune transaction")
		return
	}
	for _, line := range lines {
		fmt.Println(line)
	}
}

func (p *program) readAccountType() string {
	for {
		s := strings.ToUpper(p.readLine("Indiquez le type de compte (C=cheques, E=epargne, R=credit): "))
		if _, err := entities.ParseAccountType(s); err == nil {
			return s
		}
		fmt.Println("Type de compte invalide.")
	}
}

func (p *program) readLine(prompt string) string {
	fmt.Print(prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func (p *program) readInt(prompt string) int {
	for {
		n, err := strconv.Atoi(p.readLine(prompt))
		if err == nil {
			return n
		}
		fmt.Println("Nombre invalide.")
	}
}

func (p *program) readAmount(prompt string) decimal.Decimal {
	for {
		amount, err := decimal.NewFromString(p.readLine(prompt))
		if err == nil {
			return amount
		}
		fmt.Println("Montant invalide.")
	}
}

// report prints the user-facing message for a failed operation.
func (p *program) report(err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidAmount):
		fmt.Println("Montant invalide.")
	case errors.Is(err, errs.ErrInsufficientFunds):
		fmt.Println("Solde insuffisant.")
	case errors.Is(err, errs.ErrInsufficientCredit):
		fmt.Println("Limite de credit insuffisante.")
	case errors.Is(err, errs.ErrAccountNotFound):
		fmt.Println("Ce compte n'existe pas.")
	case errors.Is(err, errs.ErrUnknownAccountType):
		fmt.Println("Type de compte invalide.")
	default:
		fmt.Printf("Erreur: %s\n", err)
	}
}
