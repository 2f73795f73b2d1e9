package services

import (
	"net/mail"
	"strings"

	"github.com/adirathodd/careerpilot/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MatcherService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewMatcherService(db *gorm.DB, logger *zap.Logger) *MatcherService {
	return &MatcherService{DB: db, Logger: logger}
}

// FindCompanyFromEmail tries to match an email to a tracked Company.
func (s *MatcherService) FindCompanyFromEmail(subject, rawSender string) *models.Company {
	var companies []models.Company
	if err := s.DB.Find(&companies).Error; err != nil {
		s.Logger.Warn("loading companies for matching", zap.Error(err))
		return nil
	}
	return MatchCompany(companies, subject, rawSender)
}

// MatchCompany matches an email's subject and sender against known
// companies. Three rules, in order: subject mention, sender display-name
// mention, sender domain mention.
func MatchCompany(companies []models.Company, subject, rawSender string) *models.Company {
	// Parse the sender header into display name and address, e.g.
	// "Stripe Recruiting <jobs@stripe.com>" -> name + addr.
	parsedAddr, err := mail.ParseAddress(rawSender)
	senderName := ""
	senderAddr := ""
	if err == nil {
		senderName = strings.ToLower(parsedAddr.Name)
		senderAddr = strings.ToLower(parsedAddr.Address)
	} else {
		senderAddr = strings.ToLower(rawSender)
	}

	subjectLower := strings.ToLower(subject)

	for i := range companies {
		company := &companies[i]
		companyName := strings.ToLower(company.Name)
		// Very short names match everything; skip them.
		if len(companyName) < 3 {
			continue
		}

		if strings.Contains(subjectLower, companyName) {
			return company
		}

		if senderName != "" && strings.Contains(senderName, companyName) {
			return company
		}

		// Domain check only looks after the '@'.
		parts := strings.Split(senderAddr, "@")
		if len(parts) == 2 && strings.Contains(parts[1], companyName) {
			return company
		}
	}

	return nil
}
