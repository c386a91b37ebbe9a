package smssvc

import (
	"fmt"
	"log"
	"sync"

	"github.com/trezcool/elimu/core"
)

var (
	SentMessages = make([]core.SMSMessage, 0)
	mu           sync.Mutex
)

// consoleService writes messages to the log instead of a carrier gateway.
// This is the whole delivery channel outside production: the OTP code is
// also returned in-band by the API, so nothing depends on real delivery.
type consoleService struct {
	appName       string
	disableOutput bool
}

var _ core.SMSService = (*consoleService)(nil)

func NewConsoleService(conf *core.Config) core.SMSService {
	return &consoleService{appName: conf.AppName}
}

func (svc consoleService) SendMessages(messages ...*core.SMSMessage) {
	for _, msg := range messages {
		go svc.sendMessage(msg)
	}
}

func (svc consoleService) sendMessage(msg *core.SMSMessage) {
	if msg.To == "" || msg.Body == "" {
		return
	}
	svc.send(*msg)
	mu.Lock()
	SentMessages = append(SentMessages, *msg)
	mu.Unlock()
}

func (svc consoleService) send(msg core.SMSMessage) {
	if !svc.disableOutput {
		log.Println(fmt.Sprintf("[%s] SMS to %s: %s", svc.appName, msg.To, msg.Body))
	}
}

type consoleServiceMock struct {
	consoleService
}

func NewConsoleServiceMock(conf *core.Config) core.SMSService {
	return &consoleServiceMock{
		consoleService: consoleService{
			appName:       conf.AppName,
			disableOutput: true,
		},
	}
}

func (svc *consoleServiceMock) SendMessages(messages ...*core.SMSMessage) {
	for _, msg := range messages {
		// run synchronously
		svc.sendMessage(msg)
	}
}

// ClearSentMessages resets the capture buffer between tests.
func ClearSentMessages() {
	mu.Lock()
	SentMessages = SentMessages[:0]
	mu.Unlock()
}
