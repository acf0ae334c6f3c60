package loginform

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-loginform/pkg/controller"
	"github.com/goliatone/go-loginform/pkg/page"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), "loginform.css")
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	for _, class := range []string{".organic-field", ".error-message.show", ".harmony-button.loading"} {
		if !strings.Contains(string(data), class) {
			t.Fatalf("expected stylesheet to style %s", class)
		}
	}
}

func TestEmbeddedTemplatesListsPages(t *testing.T) {
	for _, name := range []string{"base.tpl", "login.tpl", "home.tpl"} {
		if _, err := fs.Stat(EmbeddedTemplates(), name); err != nil {
			t.Fatalf("expected %s embedded: %v", name, err)
		}
	}
}

func TestRenderAndBind(t *testing.T) {
	markup, err := RenderLoginPage(context.Background(), LoginData{}, page.WithSubmitMode(SubmitModeEmailGate))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	doc, ctrl, err := Bind(string(markup), controller.WithSubmitMode(SubmitModeEmailGate))
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	defer ctrl.Close()

	doc.ElementByID(controller.EmailID).Type("not-an-email")
	doc.ElementByID(controller.FormID).Submit()

	if got := ctrl.Error(controller.FieldEmail); !got.Active {
		t.Fatalf("expected email error after invalid submit")
	}
	if len(doc.Alerts()) != 0 {
		t.Fatalf("expected no alert, got %v", doc.Alerts())
	}
}
