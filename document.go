package nfecore

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
)

const accessKeyIDPrefix = "NFe"

// dateTimeLayout is the TDateTimeUTC form: always a numeric offset, never "Z".
const dateTimeLayout = "2006-01-02T15:04:05-07:00"

var errNoRootElement = errors.New("document has no root element")

// AdjustXML rewrites an NF-e/NFC-e document built under normal emission so it
// matches the active contingency:
//   - ide/tpEmis is set to the active emission type
//   - ide/dhCont and ide/xJust carry the activation time, in the zone of the
//     activating state, and the cleaned motive
//   - the access key in infNFe@Id and ide/cDV is recomputed, when present
//   - an enveloped Signature is dropped since it no longer matches
//
// It fails with ErrNotActive when contingency is off and with
// ErrDocumentRewriteFailed, wrapping the cause, when the document lacks the
// elements the rewrite needs.
func (c *Contingency) AdjustXML(document []byte) ([]byte, error) {
	state := c.State()
	if !state.Active {
		return nil, ErrNotActive
	}
	activatedAt := state.ActivatedAt
	if activatedAt.IsZero() {
		activatedAt = c.currentTime().Truncate(time.Second)
	}
	// Without a state code (after Load) the clock's own zone is kept.
	if loc, err := StateLocation(state.StateCode); err == nil {
		activatedAt = activatedAt.In(loc)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(document); err != nil {
		return nil, NewDocumentRewriteError(fmt.Errorf("parse document: %w", err))
	}
	if doc.Root() == nil {
		return nil, NewDocumentRewriteError(errNoRootElement)
	}

	infNFe := doc.FindElement("//infNFe")
	if infNFe == nil {
		return nil, NewDocumentRewriteError(missingElement("infNFe"))
	}
	ide := infNFe.SelectElement("ide")
	if ide == nil {
		return nil, NewDocumentRewriteError(missingElement("infNFe/ide"))
	}
	tpEmis := ide.SelectElement("tpEmis")
	if tpEmis == nil {
		return nil, NewDocumentRewriteError(missingElement("infNFe/ide/tpEmis"))
	}

	tpEmis.SetText(state.EmissionType)
	setContingencyJustification(ide, activatedAt, state.Motive)

	if err := rekeyDocument(infNFe, ide, state.EmissionType); err != nil {
		return nil, NewDocumentRewriteError(err)
	}

	if parent := infNFe.Parent(); parent != nil {
		if sig := parent.SelectElement("Signature"); sig != nil {
			parent.RemoveChild(sig)
		}
	}

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, NewDocumentRewriteError(fmt.Errorf("serialize document: %w", err))
	}
	return out, nil
}

// setContingencyJustification writes dhCont and xJust, replacing earlier
// values. The schema orders them right before NFref.
func setContingencyJustification(ide *etree.Element, at time.Time, motive string) {
	for _, tag := range []string{"dhCont", "xJust"} {
		if old := ide.SelectElement(tag); old != nil {
			ide.RemoveChild(old)
		}
	}

	dhCont := etree.NewElement("dhCont")
	dhCont.SetText(at.Format(dateTimeLayout))
	xJust := etree.NewElement("xJust")
	xJust.SetText(CleanString(motive))

	if ref := ide.SelectElement("NFref"); ref != nil {
		idx := ref.Index()
		ide.InsertChildAt(idx, xJust)
		ide.InsertChildAt(idx, dhCont)
		return
	}
	ide.AddChild(dhCont)
	ide.AddChild(xJust)
}

// rekeyDocument recomputes the access key held in infNFe@Id. Documents that
// were not keyed yet are left alone.
func rekeyDocument(infNFe, ide *etree.Element, emissionType string) error {
	id := infNFe.SelectAttrValue("Id", "")
	if id == "" {
		return nil
	}
	if !strings.HasPrefix(id, accessKeyIDPrefix) {
		return fmt.Errorf("infNFe Id %q does not start with %q", id, accessKeyIDPrefix)
	}

	key, err := ParseAccessKey(strings.TrimPrefix(id, accessKeyIDPrefix))
	if err != nil {
		return fmt.Errorf("infNFe Id: %w", err)
	}
	key, err = key.WithEmissionType(emissionType)
	if err != nil {
		return fmt.Errorf("rekey: %w", err)
	}

	infNFe.CreateAttr("Id", accessKeyIDPrefix+key.String())
	if cDV := ide.SelectElement("cDV"); cDV != nil {
		cDV.SetText(key.CheckDigit)
	}
	return nil
}

func missingElement(path string) error {
	return fmt.Errorf("missing <%s> element", path)
}
