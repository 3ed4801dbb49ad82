package tenantdb

import (
	"testing"

	"github.com/softcenter/freight-bi/internal/config"
	"github.com/softcenter/freight-bi/internal/store"
)

func testOpener() *Opener {
	return NewOpener(config.FirebirdConfig{
		User:     "SYSDBA",
		Password: "masterkey",
		Charset:  "WIN1252",
	})
}

func TestDSN(t *testing.T) {
	o := testOpener()
	got := o.DSN(store.ConnectionInfo{
		CompanyID: 7,
		Host:      "192.168.0.10",
		Port:      "3050",
		Path:      `C:\dados\RCR.FDB`,
	})
	want := `SYSDBA:masterkey@192.168.0.10:3050/C:\dados\RCR.FDB?charset=WIN1252`
	if got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}

func TestDSNWithoutPort(t *testing.T) {
	o := testOpener()
	got := o.DSN(store.ConnectionInfo{Host: "fbhost", Path: "/var/fb/empresa.fdb"})
	want := "SYSDBA:masterkey@fbhost//var/fb/empresa.fdb?charset=WIN1252"
	if got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}

func TestDSNEscapesCredentials(t *testing.T) {
	o := NewOpener(config.FirebirdConfig{User: "user@corp", Password: "p:ss/w"})
	got := o.DSN(store.ConnectionInfo{Host: "h", Port: "3050", Path: "db.fdb"})
	want := "user@corp:p:ss%2Fw@h:3050/db.fdb"
	if got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}

// Connection info flows from the directory row into the DSN untouched,
// so two companies can never resolve to the same handle unless their
// directory rows match.
func TestDSNDistinctPerCompany(t *testing.T) {
	o := testOpener()
	a := o.DSN(store.ConnectionInfo{CompanyID: 1, Host: "10.0.0.1", Port: "3050", Path: `C:\a.fdb`})
	b := o.DSN(store.ConnectionInfo{CompanyID: 2, Host: "10.0.0.2", Port: "3050", Path: `C:\b.fdb`})
	if a == b {
		t.Fatalf("expected distinct DSNs, both %q", a)
	}
}
