package services

import (
	"fmt"
	"strings"

	"github.com/qamus-labs/rootscan-cli/internal/core/domain"
)

// Prompt budget defaults. The verse block is trimmed so the whole prompt
// stays inside the token budget; the estimate is deliberately coarse and
// conservative (roughly one token per three bytes of Arabic text).
const (
	DefaultTokenBudget = 25000
	DefaultMaxVerses   = 100
)

// promptTemplate is the fixed Arabic analysis request. The model must
// answer under the eight headings of domain.SectionHeadings, in order,
// so the reply parser can split it mechanically.
const promptTemplate = `الرجاء الالتزام الصارم بكل قسم مذكور أدناه دون تغيير الترتيب أو العناوين.
يُرجَى قِرَاءَةُ التَّعْلِيمَاتِ بِتَأَنٍّ ثُمَّ الإِجَابَةُ حَسْبَ النَّمَطِ الْمُحَدَّدِ فَقَط

مَطْلُوبٌ مِنْكَ ما يَلِي، مُسْتَنِدًا حَصْرًا إِلَى مَعَاجِمٍ مَوْثُوقَةٍ (لِسَان العَرَب، القَامُوس المـحيط، مَوْقِع «مَعَانِي»)، وَبِلُغَةٍ عَرَبِيَّةٍ فُصْحَى سَلِسَةٍ تُنَاسِبُ فَهْمَ طِفْلٍ فِي الـ12 مِنْ عُمُرِهِ:

1. **مفردات لسان العرب**
   - أَعْطِنِي مَعْنَى الجَذْر في «لسان العرب» فَقَط.
   - اشْرَح المَصْدَرَ الاسْميَّ وَالفِعْلِيَّ للجَذْر.
   - خُذ عَيِّنَةً مِـن نُصوصِ «لسان العرب» (جُمْلَةً أو جُمْلَتَيْن لا أَكْثَر) ثُمَّ لَخِّصْهَا.
   - اذْكُر أَشْهَرَ التَّصْرِيفَاتِ المُعَاصِرَةِ لِلْكَلِمَةِ (ثلاثة إلى خمسة).
   - قَدِّم مِثَالًا بَسِيطًا مُوَضِّحًا لِلْمَعْنَى (لَا تَسْتَخْدِمْ آيَاتٍ قُرْآنِيَّةٍ هُنَا).

2. **شرح لسان العرب**
   - شَرْحٌ دَقِيقٌ لِلْكَلِمَةِ بِالاعْتِمَادِ عَلَى «لسان العرب» حَصْرًا، دُونَ مَصَادِرَ أُخْرَى.

3. **الشرح (سياق قرآني)**
   - فَسِّر مَعْنَى الجَذْر كَمَا يَرِدُ فِي الآيَاتِ المُرْفَقَةِ.
   - بَيِّن المَعْنَى الأَسَاسِيَّ وَالمَعَانِي الثَّانَوِيَّةَ.

4. **المرادفات** – أَقْرَبُ الكَلِمَاتِ مَعْنًى لِلْجَذْر (3–5 كلمات).

5. **الأضداد** – كَلِمَاتٌ تُعْطِي المَعْنَى المُضَادَّ (3–5 كلمات).

6. **الفرق الدلالي**
   - قَارِن بَيْنَ الجَذْر وَاثْنَينِ مِنْ مَرَادِفَاتِهِ.
   - وَضِّح خُصُوصِيَّةَ اسْتِعْمَالِهِ فِي القُرْآنِ.

7. **التحليل الدلالي للسياق**
   - حَلِّل طُرُقَ تَوْظِيفِ الجَذْرِ فِي الآيَاتِ المُخْتَلِفَةِ.
   - أَشِرْ إِلَى الغَرَضِ البَلَاغِيِّ وَالأَثَرِ الدِّلالِيِّ لِكُلِّ اسْتِعْمَالٍ.

8. **الملخص الدلالي**
   - فِقْرَةٌ مُوَجَزَةٌ تَجْمَعُ بَيْنَ المَعْنَى المَعْجَمِيِّ، القُرْآنِيِّ، وَالسِّيَاقِيِّ.

**التنسيق المطلوب للإجابة (حافظْ عَلَى العَناوِينِ حَرْفِيًّا وَبِتَرْتِيبِهَا):**
مفردات لسان العرب: ()
شرح لسان العرب: ()
الشرح: ()
المرادفات: ()
الأضداد: ()
الفرق الدلالي: ()
التحليل الدلالي للسياق: ()
الملخص الدلالي: ()

**مُدْخَلَاتُ القَالِب** (لا تَعْدِلْ عَلَيْهَا، بَلْ اسْتَخْدِمْهَا كَمَا هِيَ):
الجذر: %s
الآيات:
%s

**قُيُودٌ:**
- لا تُضِفْ أَقْسَامًا أَوْ عَنَاوِينَ غَيْرَ مَذْكُورَةٍ.
- لا تَسْتَشْهِدْ بِآيَاتٍ خَارِجَ الآيات المذكورة.
- لا تُدْرِجْ مَصَادِرَ جَدِيدَةً غَيْرَ «لسان العرب» فِي الفِقْرَتَيْن 1 و 2.
- لُغَتُكَ يَجِبُ أَنْ تَكُونَ فَصِيحَةً وَسَلِسَةً، تَلِيقُ بِقَارِئٍ فِي سِنِّ 12 عَامًا.
- تَجَنَّبِ الإِطَالَةَ؛ كُلُّ فِقْرَةٍ مَا بَيْنَ 2–6 جُمَلٍ إِلَّا إِذَا طُلِبَ غَيْرُ ذٰلِكَ صَرَاحَةً.

**اِلْتَزِمِ الدِّقَّةَ وَالإِيجَازَ فِي آنٍ مَعًا، وَاتَّبِعْ التَّرْتِيبَ نَفْسَهُ بِدُونِ تَبْدِيلٍ.**`

// composePrompt fills the template with a root and its verse block.
func composePrompt(root, versesBlock string) string {
	return fmt.Sprintf(promptTemplate, root, versesBlock)
}

// estimateTokens approximates the token count of text without a provider
// tokenizer: the larger of bytes/3 and the whitespace word count. Arabic
// UTF-8 runs close to one token per three bytes, so this overestimates
// more often than it underestimates, which is the safe direction.
func estimateTokens(text string) int {
	byBytes := len(text) / 3
	byWords := len(strings.Fields(text))
	if byBytes > byWords {
		return byBytes
	}
	return byWords
}

// buildPrompt renders the analysis prompt for root, quoting as many
// matched verses as fit the token budget (and at most maxVerses).
// It returns the prompt and the verses actually quoted.
func buildPrompt(root string, matches []domain.VerseMatch, tokenBudget, maxVerses int) (string, []domain.VerseMatch) {
	if tokenBudget <= 0 {
		tokenBudget = DefaultTokenBudget
	}
	if maxVerses <= 0 {
		maxVerses = DefaultMaxVerses
	}

	var lines []string
	var selected []domain.VerseMatch
	for _, m := range matches {
		if len(selected) >= maxVerses {
			break
		}
		line := fmt.Sprintf("(%d:%d) %s", m.Verse.Sura, m.Verse.Ayah, m.Verse.Text)
		prospect := composePrompt(root, strings.Join(append(lines, line), "\n"))
		if estimateTokens(prospect) > tokenBudget {
			break
		}
		lines = append(lines, line)
		selected = append(selected, m)
	}
	return composePrompt(root, strings.Join(lines, "\n")), selected
}
