package codec

// pythonCodec is one text codec module of Python's encodings package.
type pythonCodec struct {
	// iana is the registry name used to find a Go implementation; empty for
	// Python-only codecs.
	iana    string
	aliases []string
}

// registry lists Python's text codecs by module name with the aliases of
// encodings.aliases. Bytes-to-bytes codecs and platform-only codecs (mbcs,
// oem) are left out: the generated code decodes bytes to str on any host.
// nolint:gochecknoglobals
var registry = map[string]pythonCodec{
	"ascii": {"US-ASCII", []string{"646", "ansi_x3.4_1968", "ansi_x3_4_1968", "ansi_x3.4_1986", "cp367", "csascii", "ibm367", "iso646_us", "iso_646.irv_1991", "iso_ir_6", "us", "us_ascii"}},
	"utf_8": {"UTF-8", []string{"u8", "utf", "utf8", "utf8_ucs2", "utf8_ucs4", "cp65001"}},
	"utf_8_sig": {"", nil},
	"utf_7": {"UTF-7", []string{"u7", "utf7", "unicode_1_1_utf_7"}},
	"utf_16": {"UTF-16", []string{"u16", "utf16"}},
	"utf_16_be": {"UTF-16BE", []string{"unicodebigunmarked", "utf_16be"}},
	"utf_16_le": {"UTF-16LE", []string{"unicodelittleunmarked", "utf_16le"}},
	"utf_32": {"UTF-32", []string{"u32", "utf32"}},
	"utf_32_be": {"UTF-32BE", []string{"utf_32be"}},
	"utf_32_le": {"UTF-32LE", []string{"utf_32le"}},
	"latin_1": {"ISO-8859-1", []string{"8859", "cp819", "csisolatin1", "ibm819", "iso8859", "iso8859_1", "iso_8859_1", "iso_8859_1_1987", "iso_ir_100", "l1", "latin", "latin1"}},
	"iso8859_2": {"ISO-8859-2", []string{"csisolatin2", "iso_8859_2", "iso_8859_2_1987", "iso_ir_101", "l2", "latin2"}},
	"iso8859_3": {"ISO-8859-3", []string{"csisolatin3", "iso_8859_3", "iso_8859_3_1988", "iso_ir_109", "l3", "latin3"}},
	"iso8859_4": {"ISO-8859-4", []string{"csisolatin4", "iso_8859_4", "iso_8859_4_1988", "iso_ir_110", "l4", "latin4"}},
	"iso8859_5": {"ISO-8859-5", []string{"csisolatincyrillic", "cyrillic", "iso_8859_5", "iso_8859_5_1988", "iso_ir_144"}},
	"iso8859_6": {"ISO-8859-6", []string{"arabic", "asmo_708", "csisolatinarabic", "ecma_114", "iso_8859_6", "iso_8859_6_1987", "iso_ir_127"}},
	"iso8859_7": {"ISO-8859-7", []string{"csisolatingreek", "ecma_118", "elot_928", "greek", "greek8", "iso_8859_7", "iso_8859_7_1987", "iso_ir_126"}},
	"iso8859_8": {"ISO-8859-8", []string{"csisolatinhebrew", "hebrew", "iso_8859_8", "iso_8859_8_1988", "iso_ir_138"}},
	"iso8859_9": {"ISO-8859-9", []string{"csisolatin5", "iso_8859_9", "iso_8859_9_1989", "iso_ir_148", "l5", "latin5"}},
	"iso8859_10": {"ISO-8859-10", []string{"csisolatin6", "iso_8859_10", "iso_8859_10_1992", "iso_ir_157", "l6", "latin6"}},
	"iso8859_11": {"", []string{"thai", "iso_8859_11", "iso_8859_11_2001"}},
	"iso8859_13": {"ISO-8859-13", []string{"iso_8859_13", "l7", "latin7"}},
	"iso8859_14": {"ISO-8859-14", []string{"iso_8859_14", "iso_8859_14_1998", "iso_celtic", "iso_ir_199", "l8", "latin8"}},
	"iso8859_15": {"ISO-8859-15", []string{"iso_8859_15", "l9", "latin9"}},
	"iso8859_16": {"ISO-8859-16", []string{"iso_8859_16", "iso_8859_16_2001", "iso_ir_226", "l10", "latin10"}},
	"cp037": {"IBM037", []string{"037", "csibm037", "ebcdic_cp_ca", "ebcdic_cp_nl", "ebcdic_cp_us", "ebcdic_cp_wt", "ibm037", "ibm039"}},
	"cp273": {"", []string{"273", "ibm273", "csibm273"}},
	"cp424": {"", []string{"424", "csibm424", "ebcdic_cp_he", "ibm424"}},
	"cp437": {"IBM437", []string{"437", "cspc8codepage437", "ibm437"}},
	"cp500": {"", []string{"500", "csibm500", "ebcdic_cp_be", "ebcdic_cp_ch", "ibm500"}},
	"cp720": {"", nil},
	"cp737": {"", nil},
	"cp775": {"", []string{"775", "cspc775baltic", "ibm775"}},
	"cp850": {"IBM850", []string{"850", "cspc850multilingual", "ibm850"}},
	"cp852": {"IBM852", []string{"852", "cspcp852", "ibm852"}},
	"cp855": {"IBM855", []string{"855", "csibm855", "ibm855"}},
	"cp856": {"", nil},
	"cp857": {"", []string{"857", "csibm857", "ibm857"}},
	"cp858": {"IBM00858", []string{"858", "csibm858", "ibm858"}},
	"cp860": {"IBM860", []string{"860", "csibm860", "ibm860"}},
	"cp861": {"", []string{"861", "cp_is", "csibm861", "ibm861"}},
	"cp862": {"IBM862", []string{"862", "cspc862latinhebrew", "ibm862"}},
	"cp863": {"IBM863", []string{"863", "csibm863", "ibm863"}},
	"cp864": {"", []string{"864", "csibm864", "ibm864"}},
	"cp865": {"IBM865", []string{"865", "csibm865", "ibm865"}},
	"cp866": {"IBM866", []string{"866", "csibm866", "ibm866"}},
	"cp869": {"", []string{"869", "cp_gr", "csibm869", "ibm869"}},
	"cp874": {"windows-874", nil},
	"cp875": {"", nil},
	"cp932": {"", []string{"932", "ms932", "mskanji", "ms_kanji"}},
	"cp949": {"", []string{"949", "ms949", "uhc"}},
	"cp950": {"", []string{"950", "ms950"}},
	"cp1006": {"", nil},
	"cp1026": {"", []string{"1026", "csibm1026", "ibm1026"}},
	"cp1125": {"", []string{"1125", "ibm1125", "cp866u", "ruscii"}},
	"cp1140": {"IBM01140", []string{"1140", "ibm1140"}},
	"cp1250": {"windows-1250", []string{"1250", "windows_1250"}},
	"cp1251": {"windows-1251", []string{"1251", "windows_1251"}},
	"cp1252": {"windows-1252", []string{"1252", "windows_1252"}},
	"cp1253": {"windows-1253", []string{"1253", "windows_1253"}},
	"cp1254": {"windows-1254", []string{"1254", "windows_1254"}},
	"cp1255": {"windows-1255", []string{"1255", "windows_1255"}},
	"cp1256": {"windows-1256", []string{"1256", "windows_1256"}},
	"cp1257": {"windows-1257", []string{"1257", "windows_1257"}},
	"cp1258": {"windows-1258", []string{"1258", "windows_1258"}},
	"koi8_r": {"KOI8-R", []string{"cskoi8r"}},
	"koi8_t": {"", nil},
	"koi8_u": {"KOI8-U", nil},
	"kz1048": {"", []string{"kz_1048", "rk1048", "strk1048_2002"}},
	"mac_arabic": {"", nil},
	"mac_croatian": {"", nil},
	"mac_cyrillic": {"", []string{"maccyrillic"}},
	"mac_farsi": {"", nil},
	"mac_greek": {"", []string{"macgreek"}},
	"mac_iceland": {"", []string{"maciceland"}},
	"mac_latin2": {"", []string{"maccentraleurope", "mac_centeuro", "maclatin2"}},
	"mac_roman": {"macintosh", []string{"macintosh", "macroman"}},
	"mac_romanian": {"", nil},
	"mac_turkish": {"", []string{"macturkish"}},
	"hp_roman8": {"", []string{"roman8", "r8", "cshproman8", "cp1051", "ibm1051"}},
	"palmos": {"", nil},
	"ptcp154": {"", []string{"csptcp154", "pt154", "cp154", "cyrillic_asian"}},
	"tis_620": {"TIS-620", []string{"tis620", "tis_620_0", "tis_620_2529_0", "tis_620_2529_1", "iso_ir_166"}},
	"big5": {"Big5", []string{"big5_tw", "csbig5"}},
	"big5hkscs": {"", []string{"big5_hkscs", "hkscs"}},
	"euc_jp": {"EUC-JP", []string{"eucjp", "ujis", "u_jis"}},
	"euc_jis_2004": {"", []string{"jisx0213", "eucjis2004"}},
	"euc_jisx0213": {"", []string{"eucjisx0213"}},
	"euc_kr": {"EUC-KR", []string{"euckr", "korean", "ksc5601", "ks_c_5601", "ks_c_5601_1987", "ksx1001", "ks_x_1001"}},
	"gb2312": {"GB2312", []string{"chinese", "csiso58gb231280", "euc_cn", "euccn", "eucgb2312_cn", "gb2312_1980", "gb2312_80", "iso_ir_58"}},
	"gbk": {"GBK", []string{"936", "cp936", "ms936"}},
	"gb18030": {"GB18030", []string{"gb18030_2000"}},
	"hz": {"HZ-GB-2312", []string{"hzgb", "hz_gb", "hz_gb_2312"}},
	"iso2022_jp": {"ISO-2022-JP", []string{"csiso2022jp", "iso2022jp", "iso_2022_jp"}},
	"iso2022_jp_1": {"", []string{"iso2022jp_1", "iso_2022_jp_1"}},
	"iso2022_jp_2": {"", []string{"iso2022jp_2", "iso_2022_jp_2"}},
	"iso2022_jp_2004": {"", []string{"iso_2022_jp_2004", "iso2022jp_2004"}},
	"iso2022_jp_3": {"", []string{"iso2022jp_3", "iso_2022_jp_3"}},
	"iso2022_jp_ext": {"", []string{"iso2022jp_ext", "iso_2022_jp_ext"}},
	"iso2022_kr": {"", []string{"csiso2022kr", "iso2022kr", "iso_2022_kr"}},
	"johab": {"", []string{"cp1361", "ms1361"}},
	"shift_jis": {"Shift_JIS", []string{"csshiftjis", "shiftjis", "sjis", "s_jis"}},
	"shift_jis_2004": {"", []string{"shiftjis2004", "sjis_2004", "s_jis_2004"}},
	"shift_jisx0213": {"", []string{"shiftjisx0213", "sjisx0213", "s_jisx0213"}},
	"raw_unicode_escape": {"", nil},
	"unicode_escape": {"", nil},
}

// aliasIndex maps every normalized module name and alias to its module.
// nolint:gochecknoglobals
var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]string {
	index := make(map[string]string, len(registry)*4)
	for module, c := range registry {
		index[module] = module
		for _, alias := range c.aliases {
			index[alias] = module
		}
	}
	return index
}
