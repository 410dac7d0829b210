package genrefinder

import "encoding/xml"

// encryptionFilePath is the standard path for the encryption descriptor.
const encryptionFilePath = "META-INF/encryption.xml"

// sinfFilePath indicates Apple FairPlay protection.
const sinfFilePath = "META-INF/sinf.xml"

// Font obfuscation algorithm URIs. Obfuscated fonts do not constitute DRM;
// the text documents remain readable.
var fontObfuscationAlgorithms = map[string]bool{
	"http://www.idpf.org/2008/embedding": true, // IDPF font obfuscation
	"http://ns.adobe.com/pdf/enc#RC":     true, // Adobe font obfuscation
}

type xmlEncryption struct {
	XMLName       xml.Name           `xml:"encryption"`
	EncryptedData []xmlEncryptedData `xml:"EncryptedData"`
}

type xmlEncryptedData struct {
	EncryptionMethod xmlEncryptionMethod `xml:"EncryptionMethod"`
}

type xmlEncryptionMethod struct {
	Algorithm string `xml:"Algorithm,attr"`
}

// checkDRM returns ErrDRMProtected when the archive declares encryption
// beyond font obfuscation. An encryption.xml that cannot be parsed is
// treated conservatively as protection.
func checkDRM(b *Book) error {
	if b.HasEntry(sinfFilePath) {
		return ErrDRMProtected
	}
	if !b.HasEntry(encryptionFilePath) {
		return nil
	}

	data, err := b.ReadEntry(encryptionFilePath)
	if err != nil {
		return err
	}
	data = stripBOM(data)

	var enc xmlEncryption
	if err := xml.Unmarshal(data, &enc); err != nil {
		return ErrDRMProtected
	}

	for _, ed := range enc.EncryptedData {
		if !fontObfuscationAlgorithms[ed.EncryptionMethod.Algorithm] {
			return ErrDRMProtected
		}
	}
	return nil
}
