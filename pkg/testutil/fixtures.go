package testutil

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	tagExifIFDPointer   = 0x8769
	tagDateTimeOriginal = 0x9003
	typeASCII           = 2
	typeLong            = 4
)

// JPEGWithDateTimeOriginal returns a minimal JPEG stream whose APP1 segment
// carries an EXIF block with DateTimeOriginal set to stamp
// (layout "2006:01:02 15:04:05"). There is no image data.
func JPEGWithDateTimeOriginal(stamp string) []byte {
	tiff := tiffWithDateTimeOriginal(stamp)

	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8}) // SOI
	buf.Write([]byte{0xFF, 0xE1}) // APP1
	segLen := 2 + 6 + len(tiff)
	_ = binary.Write(&buf, binary.BigEndian, uint16(segLen))
	buf.WriteString("Exif\x00\x00")
	buf.Write(tiff)
	buf.Write([]byte{0xFF, 0xD9}) // EOI
	return buf.Bytes()
}

// JPEGWithoutExif returns a JPEG stream with no APP1 segment.
func JPEGWithoutExif() []byte {
	return []byte{0xFF, 0xD8, 0xFF, 0xD9}
}

// tiffWithDateTimeOriginal builds a little-endian TIFF with IFD0 pointing at
// an Exif sub-IFD that holds a single DateTimeOriginal tag.
func tiffWithDateTimeOriginal(stamp string) []byte {
	value := append([]byte(stamp), 0)

	const (
		ifd0Offset = 8
		ifdSize    = 2 + 12 + 4
	)
	exifOffset := uint32(ifd0Offset + ifdSize)
	valueOffset := exifOffset + ifdSize

	var buf bytes.Buffer
	le := binary.LittleEndian
	buf.WriteString("II")
	_ = binary.Write(&buf, le, uint16(42))
	_ = binary.Write(&buf, le, uint32(ifd0Offset))

	// IFD0
	_ = binary.Write(&buf, le, uint16(1))
	_ = binary.Write(&buf, le, uint16(tagExifIFDPointer))
	_ = binary.Write(&buf, le, uint16(typeLong))
	_ = binary.Write(&buf, le, uint32(1))
	_ = binary.Write(&buf, le, exifOffset)
	_ = binary.Write(&buf, le, uint32(0))

	// Exif IFD
	_ = binary.Write(&buf, le, uint16(1))
	_ = binary.Write(&buf, le, uint16(tagDateTimeOriginal))
	_ = binary.Write(&buf, le, uint16(typeASCII))
	_ = binary.Write(&buf, le, uint32(len(value)))
	_ = binary.Write(&buf, le, valueOffset)
	_ = binary.Write(&buf, le, uint32(0))

	buf.Write(value)
	return buf.Bytes()
}

// XMPSidecarAttr returns an XMP packet with the property set as an
// attribute of rdf:Description, e.g. prop "exif:DateTimeOriginal".
func XMPSidecarAttr(prop, value string) []byte {
	return []byte(fmt.Sprintf(`<?xpacket begin="" id="W5M0MpCehiHzreSzNTczkc9d"?>
<x:xmpmeta xmlns:x="adobe:ns:meta/">
  <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
    <rdf:Description rdf:about=""
        xmlns:exif="http://ns.adobe.com/exif/1.0/"
        xmlns:xmp="http://ns.adobe.com/xap/1.0/"
        xmlns:photoshop="http://ns.adobe.com/photoshop/1.0/"
        %s="%s"/>
  </rdf:RDF>
</x:xmpmeta>
<?xpacket end="w"?>`, prop, value))
}

// XMPSidecarElement returns an XMP packet with the property as a child element.
func XMPSidecarElement(prop, value string) []byte {
	return []byte(fmt.Sprintf(`<x:xmpmeta xmlns:x="adobe:ns:meta/">
  <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
    <rdf:Description rdf:about=""
        xmlns:exif="http://ns.adobe.com/exif/1.0/"
        xmlns:xmp="http://ns.adobe.com/xap/1.0/"
        xmlns:photoshop="http://ns.adobe.com/photoshop/1.0/">
      <%s>%s</%s>
    </rdf:Description>
  </rdf:RDF>
</x:xmpmeta>`, prop, value, prop))
}
