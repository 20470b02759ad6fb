package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nairsand/voicebank/internal/client"
	"github.com/nairsand/voicebank/internal/speech"
)

var errExit = errors.New("exit")

// App drives the interactive terminal session
type App struct {
	controller *client.Controller
	input      *speech.InputAdapter
	reader     *bufio.Reader
	voiceFirst bool
}

// NewApp wires the controller, the speech capabilities and the terminal.
// With voiceFirst the dashboard opens straight into voice capture.
func NewApp(backendURL string, quiet, voiceFirst bool) *App {
	var voice speech.Synthesizer
	if quiet {
		voice = speech.NoopSynthesizer{}
	} else {
		voice = speech.NewCommandSynthesizer()
	}

	api := client.NewAPIClient(backendURL)
	notifier := client.NotifierFunc(func(msg string) {
		fmt.Println(RenderNotice(msg))
	})

	controller := client.NewController(api, voice, notifier)

	reader := bufio.NewReader(os.Stdin)
	app := &App{
		controller: controller,
		reader:     reader,
		voiceFirst: voiceFirst,
	}

	// Voice input: each typed line stands in for one finalized speech
	// segment; the adapter mirrors the running transcript into the
	// controller's pending input
	app.input = speech.NewInputAdapter(
		func(onResult speech.ResultFunc, onEnd speech.EndFunc) speech.Recognizer {
			return speech.NewLineRecognizer(reader, onResult, onEnd)
		},
		func(transcript string) {
			controller.SetTranscript(transcript)
			fmt.Println(RenderListening(transcript))
		},
	)

	return app
}

// Run starts the session loop and blocks until the user exits
func (a *App) Run() error {
	DisplayWelcomeBanner()

	for {
		var err error
		switch a.controller.Stage() {
		case client.StageAuth:
			err = a.stepAuth()
		case client.StageVerifyOTP:
			err = a.stepVerifyOTP()
		case client.StageRegister:
			err = a.stepRegister()
		case client.StageLogin:
			err = a.stepLogin()
		case client.StageDashboard:
			err = a.runDashboard()
		}

		if errors.Is(err, errExit) {
			fmt.Println(mutedStyle.Render("👋 Goodbye!"))
			return nil
		}
	}
}

func (a *App) stepAuth() error {
	phone, err := PromptForPhone()
	if err != nil {
		return errExit
	}

	mockOTP, err := a.controller.SubmitPhone(phone)
	if err != nil {
		return nil // notification already shown, stage unchanged
	}

	if mockOTP != "" {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("  Demo mode: your verification code is %s", mockOTP)))
	}
	return nil
}

func (a *App) stepVerifyOTP() error {
	otp, err := PromptForOTP()
	if err != nil {
		return errExit
	}

	_ = a.controller.SubmitOTP(otp)
	return nil
}

func (a *App) stepRegister() error {
	fmt.Println(mutedStyle.Render("  Welcome! Let's open your account."))

	name, err := PromptForName()
	if err != nil {
		return errExit
	}
	pin, err := PromptForPIN("Choose a PIN:")
	if err != nil {
		return errExit
	}

	if a.controller.Register(name, pin) == nil {
		a.showDashboard()
	}
	return nil
}

func (a *App) stepLogin() error {
	pin, err := PromptForPIN("Enter your PIN:")
	if err != nil {
		return errExit
	}

	if a.controller.Login(pin) == nil {
		a.showDashboard()
	}
	return nil
}

func (a *App) showDashboard() {
	user := a.controller.User()
	if user == nil {
		return
	}
	fmt.Println()
	fmt.Println(RenderBalance(user.Name, a.controller.Balance()))
	fmt.Println(RenderTransactions(a.controller.Transactions()))
	fmt.Println(mutedStyle.Render("  Type a message, /voice to speak, /help for commands."))

	if a.voiceFirst {
		a.captureVoice()
	}
}

func (a *App) runDashboard() error {
	fmt.Print(userStyle.Render("💬 you> "))

	line, err := a.reader.ReadString('\n')
	if err != nil {
		return errExit
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	switch strings.ToLower(line) {
	case "/exit", "/quit":
		return errExit

	case "/logout":
		a.controller.Logout()
		fmt.Println(mutedStyle.Render("  Signed out."))
		return nil

	case "/balance":
		fmt.Println(RenderBalance(a.controller.User().Name, a.controller.Balance()))
		return nil

	case "/transactions":
		a.controller.RefreshTransactions()
		fmt.Println(RenderTransactions(a.controller.Transactions()))
		return nil

	case "/voice":
		a.captureVoice()
		return nil

	case "/help":
		fmt.Println(mutedStyle.Render("  /balance  /transactions  /voice  /logout  /exit"))
		return nil
	}

	a.sendChat(line)
	return nil
}

// captureVoice runs one recognition session: line-by-line segments, empty
// line to finish, then the accumulated transcript is sent as a message
func (a *App) captureVoice() {
	fmt.Println(RenderListening(""))
	fmt.Println(mutedStyle.Render("  Speak line by line; press Enter on an empty line to finish."))

	if err := a.input.Toggle(); err != nil {
		fmt.Println(RenderNotice("Could not start voice input."))
		return
	}

	// Recognition ends on the empty line; the listening indicator drops
	<-a.input.Done()

	text := a.controller.PendingInput()
	a.input.Reset()

	if strings.TrimSpace(text) == "" {
		fmt.Println(mutedStyle.Render("  Didn't catch anything."))
		return
	}
	a.sendChat(text)
}

func (a *App) sendChat(text string) {
	fmt.Println(RenderUser(text))

	reply, _ := a.controller.SendChat(text)
	if reply != "" {
		fmt.Println(RenderAssistant(reply))
	}
}
