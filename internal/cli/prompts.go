package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,13}$`)
	otpPattern   = regexp.MustCompile(`^[0-9]{6}$`)
	pinPattern   = regexp.MustCompile(`^[0-9]{4,6}$`)
)

// PromptForPhone asks for the registered mobile number
func PromptForPhone() (string, error) {
	var phone string
	prompt := &survey.Input{
		Message: "Enter your mobile number:",
		Help:    "10-digit Indian mobile number, with or without +91",
	}

	err := survey.AskOne(prompt, &phone, survey.WithValidator(func(val interface{}) error {
		str := strings.ReplaceAll(strings.TrimSpace(val.(string)), " ", "")
		if !phonePattern.MatchString(str) {
			return fmt.Errorf("enter a valid mobile number (10 digits)")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.ReplaceAll(strings.TrimSpace(phone), " ", ""), nil
}

// PromptForOTP asks for the 6-digit verification code
func PromptForOTP() (string, error) {
	var otp string
	prompt := &survey.Input{
		Message: "Enter the 6-digit verification code:",
	}

	err := survey.AskOne(prompt, &otp, survey.WithValidator(func(val interface{}) error {
		if !otpPattern.MatchString(strings.TrimSpace(val.(string))) {
			return fmt.Errorf("the code is 6 digits")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(otp), nil
}

// PromptForName asks for the account holder's name during registration
func PromptForName() (string, error) {
	var name string
	prompt := &survey.Input{
		Message: "Enter your name:",
	}

	err := survey.AskOne(prompt, &name, survey.WithValidator(survey.Required))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(name), nil
}

// PromptForPIN asks for the login PIN without echoing it
func PromptForPIN(message string) (string, error) {
	var pin string
	prompt := &survey.Password{
		Message: message,
		Help:    "4-6 digit numeric PIN",
	}

	err := survey.AskOne(prompt, &pin, survey.WithValidator(func(val interface{}) error {
		if !pinPattern.MatchString(val.(string)) {
			return fmt.Errorf("the PIN is 4-6 digits")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return pin, nil
}
