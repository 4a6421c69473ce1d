package email

import (
	"context"
	"encoding/json"
	"net/url"

	"resetpoint/internal/core/domain/reset"
	"resetpoint/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type EmailSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender                  string
	resetLinkTemplate       string
	resetLinkBaseUrl        url.URL
	passwordChangedTemplate string
}

func NewEmailSender(
	awsConfig aws.Config,
	sender string,
	resetLinkTemplate string,
	resetLinkBaseUrl url.URL,
	passwordChangedTemplate string,
) *EmailSender {
	return &EmailSender{
		ses:                     ses.NewFromConfig(awsConfig),
		sender:                  sender,
		resetLinkTemplate:       resetLinkTemplate,
		resetLinkBaseUrl:        resetLinkBaseUrl,
		passwordChangedTemplate: passwordChangedTemplate,
	}
}

func (s *EmailSender) SendResetLink(
	ctx context.Context,
	u user.User,
	id reset.ID,
	token reset.PlaintextToken,
) error {
	link := s.resetLinkBaseUrl.JoinPath("password", "reset")
	query := url.Values{}
	query.Set("id", string(id))
	query.Set("token", string(token))
	link.RawQuery = query.Encode()

	templateParamsBytes, err := json.Marshal(
		resetLinkTemplateParams{PasswordResetUrl: link.String()},
	)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(u.Email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.resetLinkTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

func (s *EmailSender) SendPasswordChanged(ctx context.Context, u user.User) error {
	templateParamsBytes, err := json.Marshal(
		passwordChangedTemplateParams{Email: string(u.Email)},
	)
	if err != nil {
		return err
	}
	templateParams := string(templateParamsBytes)

	email := string(u.Email)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &s.passwordChangedTemplate,
			TemplateData: &templateParams,
		},
	)
	return err
}

type resetLinkTemplateParams struct {
	PasswordResetUrl string `json:"passwordResetUrl"`
}

type passwordChangedTemplateParams struct {
	Email string `json:"email"`
}
